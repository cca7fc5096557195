package ballot

import (
	"testing"

	"github.com/matzehuels/coalition/pkg/errors"
)

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{"valid", Order{3, 1, 2}, false},
		{"short", Order{1, 2}, true},
		{"duplicate", Order{1, 1, 2}, true},
		{"out of range", Order{1, 2, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate(3)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOrder) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidOrder)
			}
		})
	}
}

func TestOrderReversed(t *testing.T) {
	o := Order{3, 1, 2}
	r := o.Reversed()

	if got := r.String(); got != "2 1 3" {
		t.Errorf("Reversed() = %q, want %q", got, "2 1 3")
	}
	if o.String() != "3 1 2" {
		t.Errorf("Reversed modified receiver: %v", o)
	}
	if got := o.Winner(); got != 2 {
		t.Errorf("Winner() = %d, want 2", got)
	}
	if got := r.Ballot().String(); got != "2,1,3" {
		t.Errorf("Reversed().Ballot() = %q, want %q", got, "2,1,3")
	}
}
