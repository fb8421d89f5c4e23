package scenario

import (
	"context"
	"fmt"
	"io"
)

// BaseConstructorMessage is written by every BaseEntity construction.
const BaseConstructorMessage = "In BaseClass constructor\n"

// BaseEntity has no state; constructing one only announces itself.
type BaseEntity struct{}

func (BaseEntity) construct(w io.Writer) error {
	_, err := io.WriteString(w, BaseConstructorMessage)
	return err
}

// DerivedEntity specializes BaseEntity. Count and Ratio are nil until
// something assigns them; NewDerivedEntity never does.
type DerivedEntity struct {
	BaseEntity

	Count *int
	Ratio *float64
}

// NewDerivedEntity runs base construction, then echoes count+ratio formatted
// with the given precision. Nothing follows the number, not even a newline.
func NewDerivedEntity(w io.Writer, count int, ratio float64, precision int) (*DerivedEntity, error) {
	d := &DerivedEntity{}
	if err := d.BaseEntity.construct(w); err != nil {
		return nil, fmt.Errorf("base construction: %w", err)
	}

	// Parameters land in locals, not in d.Count / d.Ratio.
	a, b := count, ratio
	sum := float64(a) + b

	if _, err := io.WriteString(w, FormatFloat(sum, precision)); err != nil {
		return nil, fmt.Errorf("writing sum: %w", err)
	}
	return d, nil
}

// Construct is the Construct-Chain scenario.
type Construct struct {
	Count     int
	Ratio     float64
	Precision int
}

func (c *Construct) Name() string { return "construct" }

func (c *Construct) Run(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := NewDerivedEntity(w, c.Count, c.Ratio, c.Precision)
	return err
}
