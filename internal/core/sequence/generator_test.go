package sequence

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(value string) func() time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func staticReader(code string) LastCodeReader {
	return ReaderFunc(func(ctx context.Context, series Series) (string, error) {
		return code, nil
	})
}

func TestNextCode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		series Series
		last   string
		want   string
	}{
		{
			name:   "empty series starts at one",
			series: GrowerGroups(),
			last:   "",
			want:   "GG001",
		},
		{
			name:   "increments last code",
			series: GrowerGroups(),
			last:   "GG007",
			want:   "GG008",
		},
		{
			name:   "vendor series",
			series: Vendors(),
			last:   "V013",
			want:   "V014",
		},
		{
			name:   "foreign prefix restarts series",
			series: Vendors(),
			last:   "VEND-99",
			want:   "V001",
		},
		{
			name:   "malformed suffix restarts series",
			series: GrowerGroups(),
			last:   "GG0x7",
			want:   "GG001",
		},
		{
			name:   "width overflow keeps counting",
			series: GrowerGroups(),
			last:   "GG999",
			want:   "GG1000",
		},
		{
			name:   "month stamped series increments within period",
			series: CreditNotes(),
			last:   "CN202609004",
			want:   "CN202609005",
		},
		{
			name:   "month stamped series restarts on period change",
			series: CreditNotes(),
			last:   "CN202608017",
			want:   "CN202609001",
		},
		{
			name:   "receipt voucher stamp",
			series: ReceiptVouchers(),
			last:   "",
			want:   "RV202609001",
		},
		{
			name:   "settlement stamp",
			series: Settlements(),
			last:   "PA202609002",
			want:   "PA202609003",
		},
		{
			name:   "farmer code scoped to group prefix",
			series: Farmers(2, "GG002"),
			last:   "GG002F004",
			want:   "GG002F005",
		},
		{
			name:   "packing recipe bare numeric code",
			series: PackingRecipes(),
			last:   "0005",
			want:   "0006",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(staticReader(tt.last)).WithClock(fixedClock("2026-09-15"))
			got := gen.NextCode(ctx, tt.series)
			if got != tt.want {
				t.Errorf("NextCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextCode_ReaderErrorRestartsSeries(t *testing.T) {
	reader := ReaderFunc(func(ctx context.Context, series Series) (string, error) {
		return "", errors.New("connection refused")
	})
	gen := NewGenerator(reader).WithClock(fixedClock("2026-09-15"))

	got := gen.NextCode(context.Background(), CreditNotes())
	if got != "CN202609001" {
		t.Errorf("NextCode() = %q, want CN202609001", got)
	}
}

func TestNextCode_UsesInsertionOrderNotMax(t *testing.T) {
	// The reader hands back whatever row was created last, even when a
	// numerically larger code exists. The generator trusts it.
	gen := NewGenerator(staticReader("GG003")).WithClock(fixedClock("2026-09-15"))

	got := gen.NextCode(context.Background(), GrowerGroups())
	if got != "GG004" {
		t.Errorf("NextCode() = %q, want GG004", got)
	}
}

func TestCurrentPrefix(t *testing.T) {
	now := fixedClock("2026-03-01")()

	if got := CreditNotes().CurrentPrefix(now); got != "CN202603" {
		t.Errorf("CurrentPrefix() = %q, want CN202603", got)
	}
	if got := GrowerGroups().CurrentPrefix(now); got != "GG" {
		t.Errorf("CurrentPrefix() = %q, want GG", got)
	}
}
