package cmd

import (
	"strings"

	"lever/core"
	"lever/pkg/number"

	"github.com/spf13/cobra"
)

var addMarketCmd = &cobra.Command{
	Use:     "add-market",
	Aliases: []string{"am"},
	Short:   "register a new market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		priceStore := providePriceStore(database)
		marketService := provideMarketService(database, marketStore, priceStore)

		symbol, _ := cmd.Flags().GetString("symbol")
		assetID, _ := cmd.Flags().GetString("asset")
		supplyRate, _ := cmd.Flags().GetString("supply-rate")
		borrowRate, _ := cmd.Flags().GetString("borrow-rate")
		reserveFactor, _ := cmd.Flags().GetString("reserve-factor")
		collateralFactor, _ := cmd.Flags().GetString("collateral-factor")
		liquidationThreshold, _ := cmd.Flags().GetString("liquidation-threshold")
		price, _ := cmd.Flags().GetString("price")

		market, err := marketService.CreateMarket(ctx, &core.CreateMarketReq{
			AssetID:              assetID,
			Symbol:               strings.ToUpper(symbol),
			AnnualSupplyRate:     number.Decimal(supplyRate),
			AnnualBorrowRate:     number.Decimal(borrowRate),
			ReserveFactor:        number.Decimal(reserveFactor),
			CollateralFactor:     number.Decimal(collateralFactor),
			LiquidationThreshold: number.Decimal(liquidationThreshold),
			InitialPrice:         number.Decimal(price),
		})
		if err != nil {
			cmd.PrintErrln("create market error:", err)
			return
		}

		cmd.Println("market created:", market.Symbol, market.AssetID)
	},
}

func init() {
	rootCmd.AddCommand(addMarketCmd)

	addMarketCmd.Flags().String("symbol", "", "market symbol")
	addMarketCmd.Flags().String("asset", "", "asset id")
	addMarketCmd.Flags().String("supply-rate", "0", "annual supply rate")
	addMarketCmd.Flags().String("borrow-rate", "0", "annual borrow rate")
	addMarketCmd.Flags().String("reserve-factor", "0", "reserve factor")
	addMarketCmd.Flags().String("collateral-factor", "0", "collateral factor")
	addMarketCmd.Flags().String("liquidation-threshold", "0", "liquidation threshold")
	addMarketCmd.Flags().String("price", "0", "initial price")
}
