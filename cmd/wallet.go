package cmd

import (
	"lever/pkg/number"

	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "credit a user custody balance",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		walletStore := provideWalletStore(database)
		walletService := provideWalletService(database, walletStore)

		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")

		if err := walletService.Deposit(ctx, userID, assetID, number.Decimal(amount)); err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("deposited", amount, assetID, "for", userID)
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)

	depositCmd.Flags().String("user", "", "user id")
	depositCmd.Flags().String("asset", "", "asset id")
	depositCmd.Flags().String("amount", "0", "amount")
}
