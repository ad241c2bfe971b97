// Package selection decides whether adding a catalog product to a cart needs
// an explicit size/color choice first, and walks that choice through a small
// dialog state machine.
package selection

import (
	"errors"
	"fmt"

	"github.com/mmbm-clothing/storefront/internal/catalog"
)

// State is the resolver's dialog state.
type State int

const (
	// Idle means no selection dialog is open.
	Idle State = iota
	// AwaitingSelection means the size/color picker is open.
	AwaitingSelection
	// Resolved means a selection was confirmed or skipped and the product
	// was handed to the consumer.
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingSelection:
		return "awaiting_selection"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrNoSelectionOpen = errors.New("selection: no selection in progress")
	ErrUnknownOption   = errors.New("selection: option not offered by product")
)

// AddFunc consumes a resolved product together with the confirmed size and
// color. Either value may be empty when the product does not offer that axis.
type AddFunc func(p catalog.Product, size, color string)

// Resolver is the per-product-card dialog state machine. It keeps no memory
// across products: every Open recomputes defaults from scratch, and a
// cancelled dialog leaves nothing behind.
type Resolver struct {
	add AddFunc

	state   State
	product catalog.Product
	size    string
	color   string
}

// NewResolver creates an idle resolver feeding confirmed selections to add.
func NewResolver(add AddFunc) *Resolver {
	return &Resolver{add: add}
}

// State returns the current dialog state.
func (r *Resolver) State() State {
	return r.state
}

// Open starts resolving the given product. A product without sizes or colors
// is handed to the consumer immediately with no variant; otherwise the
// picker opens with the first available size and first available color
// preselected (or an empty value for an axis with no options).
func (r *Resolver) Open(p catalog.Product) {
	if !p.HasVariants() {
		r.add(p, "", "")
		r.state = Resolved
		return
	}

	r.product = p
	r.size = firstOption(p.Sizes)
	r.color = firstOption(p.Colors)
	r.state = AwaitingSelection
}

// ChooseSize changes the pending size. The label must be one the product
// actually offers.
func (r *Resolver) ChooseSize(size string) error {
	if r.state != AwaitingSelection {
		return ErrNoSelectionOpen
	}
	if !contains(r.product.Sizes, size) {
		return fmt.Errorf("%w: size %q", ErrUnknownOption, size)
	}
	r.size = size
	return nil
}

// ChooseColor changes the pending color. The label must be one the product
// actually offers.
func (r *Resolver) ChooseColor(color string) error {
	if r.state != AwaitingSelection {
		return ErrNoSelectionOpen
	}
	if !contains(r.product.Colors, color) {
		return fmt.Errorf("%w: color %q", ErrUnknownOption, color)
	}
	r.color = color
	return nil
}

// Selection returns the currently pending size and color.
func (r *Resolver) Selection() (size, color string) {
	return r.size, r.color
}

// Confirm hands the product with the currently chosen size and color to the
// consumer. The chosen values may still be the defaults from Open.
func (r *Resolver) Confirm() error {
	if r.state != AwaitingSelection {
		return ErrNoSelectionOpen
	}

	r.add(r.product, r.size, r.color)
	r.state = Resolved
	return nil
}

// Cancel closes the picker without calling the consumer. No residual choice
// is kept; the next Open recomputes defaults.
func (r *Resolver) Cancel() {
	if r.state != AwaitingSelection {
		return
	}
	r.product = catalog.Product{}
	r.size = ""
	r.color = ""
	r.state = Idle
}

func firstOption(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
