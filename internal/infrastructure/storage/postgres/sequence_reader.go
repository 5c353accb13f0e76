package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/core/sequence"
)

// seriesSource maps a series name to the table and column its codes
// live in, plus the column that scopes it (if any).
type seriesSource struct {
	table    string
	codeCol  string
	scopeCol string
}

var seriesSources = map[string]seriesSource{
	"grower_group":       {table: "grower_groups", codeCol: "group_code"},
	"vendor":             {table: "vendors", codeCol: "vendor_code"},
	"farmer":             {table: "farmers", codeCol: "farmer_code", scopeCol: "group_id"},
	"credit_note":        {table: "credit_notes", codeCol: "credit_note_no"},
	"receipt_voucher":    {table: "receipt_entries", codeCol: "voucher_no"},
	"payment_settlement": {table: "payment_settlements", codeCol: "pa_number"},
	"packing_recipe":     {table: "packing_recipes", codeCol: "recipe_code"},
}

// SequenceReader implements sequence.LastCodeReader by fetching the code
// of the newest row of the series' backing table, by insertion order.
type SequenceReader struct {
	txm *TxManager
}

var _ sequence.LastCodeReader = (*SequenceReader)(nil)

func NewSequenceReader(txm *TxManager) *SequenceReader {
	return &SequenceReader{txm: txm}
}

func (r *SequenceReader) LastCode(ctx context.Context, series sequence.Series) (string, error) {
	src, ok := seriesSources[series.Name]
	if !ok {
		return "", fmt.Errorf("unknown series %q", series.Name)
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(src.codeCol).From(src.table).
		OrderBy("id DESC").
		Limit(1)
	if src.scopeCol != "" && series.Scope != 0 {
		q = q.Where(squirrel.Eq{src.scopeCol: series.Scope})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}
	var code string
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last code %s: %w", series.Name, err)
	}
	return code, nil
}
