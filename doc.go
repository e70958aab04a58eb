// Package teachtoeach assembles the TeachToEach landing page from a
// declarative page description.
//
// # Quick Start
//
// Create a renderer, render a page, write the document:
//
//	store, err := assets.NewFilesystemStore("site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := teachtoeach.NewRenderer(
//	    teachtoeach.WithResolver(assets.NewResolver(store)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, teachtoeach.Input{Page: page})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", result.HTML, 0644)
//
// # Rendering Pipeline
//
// Each section of the page becomes exactly one fragment, emitted in input
// order:
//
//  1. Headings, paragraphs, links and dividers are emitted as authored
//     (Markdown paragraphs go through Goldmark with raw HTML disabled)
//  2. Card groups become fixed-shape cards; price, tutor and mode appear
//     only when populated
//  3. Images are resolved and inlined as base64 data URIs; unavailable
//     images become a visible fallback glyph
//  4. Forms emit their declared fields, plus the acknowledgment for the
//     form when one is supplied
//
// The fragments are wrapped into an HTML5 document carrying the theme
// stylesheet. Rendering the same input against the same asset store yields
// byte-identical output.
//
// # Assets
//
// Image bytes are read through a resolver that caches every result,
// including misses, for the lifetime of the resolver. Concurrent misses on
// the same path share a single read. A missing or unreadable image never
// fails a render; [Result.MissingAssets] lists the paths that fell back.
//
// # Contact Form
//
// [ContactForm] tracks the acknowledgment state of one form. Submit checks
// that every required field is non-blank; nothing is stored or sent.
//
// # PDF Export
//
// [Exporter] prints a rendered document to PDF through headless Chrome
// (go-rod). [ExporterPool] hands out lazily created exporters for parallel
// builds. Always Close exporters and pools to release the browser.
//
// # Errors
//
// Errors wrap package sentinels and can be checked with errors.Is:
//
//	if errors.Is(err, teachtoeach.ErrValidationIncomplete) {
//	    // show the warning acknowledgment
//	}
package teachtoeach
