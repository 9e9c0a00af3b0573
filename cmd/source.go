package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/parser"
	"github.com/KaramelBytes/countrydash/internal/restcountries"
	"github.com/spf13/cobra"
)

// Query flags shared by every command that works on a view.
var (
	qSort  string
	qDesc  bool
	qMin   []string
	qRange []string
	qLimit int
)

func addQueryFlags(c *cobra.Command) {
	c.Flags().StringVar(&qSort, "sort", "", "sort by column key or label")
	c.Flags().BoolVar(&qDesc, "desc", false, "sort descending")
	c.Flags().StringSliceVar(&qMin, "min", nil, "keep rows with column >= value, as col:value (repeatable)")
	c.Flags().StringSliceVar(&qRange, "range", nil, "keep rows with min <= column <= max, as col:min:max (repeatable)")
	c.Flags().IntVar(&qLimit, "limit", 0, "keep at most N rows after sorting (0 = all)")
}

func flagQuery() (dataset.Query, error) {
	order := "asc"
	if qDesc {
		order = "desc"
	}
	return dataset.NewQuery(qMin, qRange, qSort, order, qLimit)
}

func newClient() *restcountries.Client {
	timeout := 30 * time.Second
	url := ""
	if cfg != nil {
		if cfg.HTTPTimeoutSec > 0 {
			timeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
		}
		url = cfg.APIURL
	}
	return restcountries.NewClient(timeout, restcountries.WithURL(url), restcountries.WithLogger(logger))
}

// loadDataset reads --input when given, otherwise fetches from the API. A
// failed fetch is only a warning: the command continues with no rows.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if flagInput != "" {
		return parser.LoadFile(flagInput)
	}
	ds, err := newClient().Dataset(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: could not fetch countries, continuing with an empty table: %v\n", err)
	}
	return ds, nil
}

// loadView loads the dataset and applies the query flags.
func loadView(ctx context.Context) (dataset.View, error) {
	q, err := flagQuery()
	if err != nil {
		return dataset.View{}, err
	}
	ds, err := loadDataset(ctx)
	if err != nil {
		return dataset.View{}, err
	}
	return q.Apply(ds.View()), nil
}

func columnArg(s string) (dataset.Column, error) {
	return dataset.ParseColumn(strings.TrimSpace(s))
}
