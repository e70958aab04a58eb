package teachtoeach_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/teachtoeach"
)

// Example renders a small page and lists its sections in order.
func Example() {
	r, err := teachtoeach.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Render(context.Background(), teachtoeach.Input{Page: teachtoeach.Page{Sections: []teachtoeach.Section{
		{ID: "nav", Blocks: []teachtoeach.Block{
			teachtoeach.Link{Text: "Contact", Href: "#contact"},
		}},
		{ID: "home", Blocks: []teachtoeach.Block{
			teachtoeach.Heading{Level: 1, Text: "Welcome to", Accent: "TeachToEach"},
		}},
		{ID: "footer", Blocks: []teachtoeach.Block{
			teachtoeach.Paragraph{Text: "© 2025 TeachToEach"},
		}},
	}}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, f := range res.Fragments {
		fmt.Println(f.Index, f.ID)
	}
	fmt.Println(strings.HasPrefix(string(res.HTML), "<!DOCTYPE html>"))
	// Output:
	// 0 nav
	// 1 home
	// 2 footer
	// true
}

// Example_missingImage shows the fallback glyph used for an unreadable image.
func Example_missingImage() {
	r, err := teachtoeach.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Render(context.Background(), teachtoeach.Input{Page: teachtoeach.Page{Sections: []teachtoeach.Section{
		{ID: "hero", Blocks: []teachtoeach.Block{
			teachtoeach.Image{Path: "images/absent.png", Alt: "Team", Fallback: "👥"},
		}},
	}}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.MissingAssets)
	fmt.Println(strings.Contains(string(res.HTML), "👥"))
	// Output:
	// [images/absent.png]
	// true
}

// ExampleContactForm_Submit walks a contact form from a rejected to an
// accepted submission.
func ExampleContactForm_Submit() {
	form, err := teachtoeach.NewContactForm(teachtoeach.Form{
		ID: "contact",
		Fields: []teachtoeach.FormField{
			{Name: "name", Label: "Your Name", Required: true},
			{Name: "email", Label: "Email"},
			{Name: "feedback", Label: "Message", Kind: teachtoeach.MultiLine, Required: true},
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ack, err := form.Submit(map[string]string{"name": "Ada"})
	fmt.Println(ack.Level, form.State(), err != nil)
	fmt.Println(ack.Message)

	ack, _ = form.Submit(map[string]string{"name": "Ada", "feedback": "Hello!"})
	fmt.Println(ack.Level, form.State())
	fmt.Println(ack.Message)
	// Output:
	// warning unsubmitted true
	// Please fill in the required fields: Message.
	// success submitted
	// Thank you for your message! We will get back to you soon.
}
