package teachtoeach

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FormState is the acknowledgment state of a contact form.
type FormState int

// Form states.
const (
	FormUnsubmitted FormState = iota
	FormSubmitted
)

func (s FormState) String() string {
	switch s {
	case FormUnsubmitted:
		return "unsubmitted"
	case FormSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

// AckLevel is the visual level of an acknowledgment.
type AckLevel string

// Acknowledgment levels.
const (
	AckSuccess AckLevel = "success"
	AckWarning AckLevel = "warning"
)

// Acknowledgment messages.
const (
	SuccessMessage       = "Thank you for your message! We will get back to you soon."
	warningMessagePrefix = "Please fill in the required fields: "
)

// Acknowledgment is the message shown under a form after a submit.
type Acknowledgment struct {
	Level   AckLevel
	Message string
	Missing []string // labels of blank required fields, warning only
}

// validate is safe for concurrent use.
var validate = validator.New()

// ContactForm tracks whether a form has been successfully submitted.
// Submitted values are inspected for blankness and then discarded.
type ContactForm struct {
	form Form

	mu    sync.Mutex
	state FormState
}

// NewContactForm returns an unsubmitted ContactForm for f.
// Returns ErrInvalidForm if the form has no ID or duplicate field names.
func NewContactForm(f Form) (*ContactForm, error) {
	if strings.TrimSpace(f.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidForm)
	}
	seen := make(map[string]bool, len(f.Fields))
	for _, field := range f.Fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w: %s: field without name", ErrInvalidForm, f.ID)
		}
		if seen[field.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidForm, f.ID, field.Name)
		}
		seen[field.Name] = true
	}
	return &ContactForm{form: f}, nil
}

// ID returns the form ID.
func (c *ContactForm) ID() string {
	return c.form.ID
}

// State returns the current state.
func (c *ContactForm) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit applies a submission. When a required field is blank the form
// stays unsubmitted and Submit returns a warning acknowledgment together
// with an error wrapping ErrValidationIncomplete. Once submitted, further
// calls return the success acknowledgment without looking at values.
func (c *ContactForm) Submit(values map[string]string) (Acknowledgment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == FormSubmitted {
		return successAck(), nil
	}

	missing := c.missingLabels(values)
	if len(missing) > 0 {
		ack := Acknowledgment{
			Level:   AckWarning,
			Message: warningMessagePrefix + strings.Join(missing, ", ") + ".",
			Missing: missing,
		}
		return ack, fmt.Errorf("%w: %s", ErrValidationIncomplete, strings.Join(missing, ", "))
	}

	c.state = FormSubmitted
	return successAck(), nil
}

// missingLabels returns the labels of blank required fields in declaration
// order.
func (c *ContactForm) missingLabels(values map[string]string) []string {
	var missing []string
	for _, field := range c.form.Fields {
		if !field.Required {
			continue
		}
		if err := validate.Var(strings.TrimSpace(values[field.Name]), "required"); err != nil {
			label := field.Label
			if label == "" {
				label = field.Name
			}
			missing = append(missing, label)
		}
	}
	return missing
}

func successAck() Acknowledgment {
	return Acknowledgment{Level: AckSuccess, Message: SuccessMessage}
}
