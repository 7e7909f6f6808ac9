package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"GoldRotation/internal/adapter"
	"GoldRotation/internal/collector"
	"GoldRotation/internal/model"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the latest available close for both configured assets",
	RunE:  runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gold := adapter.NewDryRunAdapter(collector.NewYahooFetcher(cfg.Proxy), logger)
	equity := adapter.NewDryRunAdapter(
		collector.NewEastMoneyFetcher(collector.InstrumentKind(cfg.Assets.EquityKind), cfg.Proxy), logger)

	for _, leg := range []struct {
		adapter *adapter.DryRunAdapter
		symbol  string
	}{
		{gold, cfg.Assets.GoldSymbol},
		{equity, cfg.Assets.EquitySymbol},
	} {
		q, err := leg.adapter.FetchQuote(ctx, leg.symbol)
		if err != nil {
			return fmt.Errorf("quote %s: %w", leg.symbol, err)
		}
		fmt.Printf("%-10s %12.4f  as of %s\n", q.Symbol, q.Price, q.AsOf.Format(model.DateLayout))
	}
	return nil
}
