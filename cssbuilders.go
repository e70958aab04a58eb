package teachtoeach

import (
	"fmt"
	"strings"

	"github.com/alnah/teachtoeach/internal/pipeline"
)

// buildStylesheet concatenates the palette rules, the card style rules and
// the code highlighting rules. The theme must be valid.
func buildStylesheet(t Theme) (string, error) {
	var buf strings.Builder
	buf.WriteString(buildBaseCSS(t))
	buf.WriteString(buildCardCSS(t))

	if t.CodeStyle != "" {
		code, err := pipeline.CodeCSS(t.CodeStyle)
		if err != nil {
			return "", err
		}
		buf.WriteString("\n/* Code */\n")
		buf.WriteString(code)
	}
	return buf.String(), nil
}

func buildBaseCSS(t Theme) string {
	return fmt.Sprintf(`
/* Base */
body {
  margin: 0;
  background-color: %[1]s;
  color: %[2]s;
  font-family: %[3]s;
}
main {
  max-width: 1100px;
  margin: 0 auto;
  padding: 80px 24px 24px;
}
h1 {
  color: %[4]s;
  font-weight: 700;
}
h1 .accent {
  color: %[2]s;
}
h2, h3 {
  color: %[4]s;
}
p, .prose {
  color: %[5]s;
}
a {
  color: %[2]s;
}
hr {
  border: none;
  border-top: 1px solid %[6]s;
  margin: 32px 0;
}

/* Navigation */
.navbar {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  display: flex;
  justify-content: space-between;
  align-items: center;
  gap: 24px;
  padding: 10px 40px;
  background-color: %[1]s;
  border-bottom: 1px solid %[6]s;
  z-index: 100;
}
.navbar .asset {
  height: 35px;
  width: auto;
}
.nav-link {
  font-weight: 500;
  font-size: 18px;
  text-decoration: none;
}
.nav-link:first-of-type {
  color: %[4]s;
  font-weight: 600;
}
.asset-fallback {
  font-size: 28px;
}

/* Form */
.page-form {
  display: flex;
  flex-direction: column;
  gap: 8px;
  max-width: 560px;
}
.page-form input, .page-form textarea {
  background-color: %[6]s;
  color: %[2]s;
  border: 1px solid %[5]s;
  border-radius: 6px;
  padding: 8px;
  font-family: inherit;
}
.page-form button {
  align-self: flex-start;
  background-color: %[4]s;
  color: %[1]s;
  border: none;
  border-radius: 6px;
  padding: 10px 20px;
  cursor: pointer;
}
.page-form button:disabled {
  opacity: 0.6;
  cursor: default;
}
.required {
  color: %[4]s;
}
.ack {
  padding: 10px 14px;
  border-radius: 6px;
}
.ack-success {
  border-left: 4px solid %[4]s;
  color: %[2]s;
}
.ack-warning {
  border-left: 4px solid %[5]s;
  color: %[5]s;
}

/* Footer */
.footer {
  margin-top: 60px;
  text-align: center;
  font-size: 14px;
  opacity: 0.8;
}
`, t.Background, t.TextLight, t.FontFamily, t.Accent, t.TextSecondary, t.CardBackground)
}

// buildCardCSS generates the card group layout and the style-specific card
// rules.
func buildCardCSS(t Theme) string {
	var buf strings.Builder

	buf.WriteString(`
/* Cards */
.card-group {
  display: flex;
  justify-content: center;
  align-items: flex-start;
  flex-wrap: wrap;
  gap: 30px;
  margin-top: 25px;
}
.value-cards {
  text-align: center;
}
.card {
  border-radius: 12px;
  padding: 24px;
  width: 280px;
  transition: all 0.3s ease;
}
.card-meta {
  display: grid;
  grid-template-columns: auto 1fr;
  gap: 4px 12px;
  margin: 12px 0 0;
}
.card-meta dd {
  margin: 0;
}
`)

	switch t.CardStyle {
	case CardFlat:
		fmt.Fprintf(&buf, `.card {
  background-color: %[1]s;
  color: %[2]s;
  border: 1px solid transparent;
}
.card:hover {
  border-color: %[3]s;
}
`, t.CardBackground, t.TextLight, t.Accent)
	case CardOutline:
		fmt.Fprintf(&buf, `.card {
  background-color: transparent;
  color: %[1]s;
  border: 1px solid %[2]s;
}
.card:hover {
  border-color: %[3]s;
  box-shadow: 0 4px 16px %[4]s;
}
`, t.TextLight, t.CardBackground, t.Accent, t.Shadow)
	default:
		fmt.Fprintf(&buf, `.card {
  background-color: %[1]s;
  color: %[2]s;
  box-shadow: 0 4px 16px %[3]s;
}
.card:hover {
  transform: translateY(-6px);
  background-color: %[4]s;
  color: %[5]s;
}
.card:hover p, .card:hover dd {
  color: %[5]s;
}
`, t.CardBackground, t.TextLight, t.Shadow, t.Accent, t.Background)
	}

	return buf.String()
}
