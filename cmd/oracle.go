package cmd

import (
	"lever/pkg/number"

	"github.com/spf13/cobra"
)

var setPriceCmd = &cobra.Command{
	Use:   "set-price",
	Short: "set a market price",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		priceStore := providePriceStore(database)
		priceService := providePriceService(database, marketStore, priceStore)

		assetID, _ := cmd.Flags().GetString("asset")
		price, _ := cmd.Flags().GetString("price")
		operator, _ := cmd.Flags().GetString("operator")

		if err := priceService.SetPrice(ctx, assetID, number.Decimal(price), operator); err != nil {
			cmd.PrintErrln("set price error:", err)
			return
		}

		cmd.Println("price updated")
	},
}

func init() {
	rootCmd.AddCommand(setPriceCmd)

	setPriceCmd.Flags().String("asset", "", "asset id")
	setPriceCmd.Flags().String("price", "0", "price")
	setPriceCmd.Flags().String("operator", "admin", "operator id")
}
