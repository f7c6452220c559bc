package main

import (
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	cobra.OnInitialize(config.InitViper)

	root := &cobra.Command{
		Use:           "claimapi",
		Short:         "Multi-document insurance claim adjudication",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}
	root.PersistentFlags().Duration("document-timeout", config.DocumentTimeout, "time budget of one document")
	root.PersistentFlags().Duration("claim-deadline", config.ClaimDeadline, "time budget of the whole claim, 0 disables it")
	root.PersistentFlags().String("llm-providers", config.LLMProviderGemini+","+config.LLMProviderOpenAI, "llm providers in priority order")
	_ = viper.BindPFlag("document_timeout", root.PersistentFlags().Lookup("document-timeout"))
	_ = viper.BindPFlag("claim_deadline", root.PersistentFlags().Lookup("claim-deadline"))
	_ = viper.BindPFlag("llm_providers", root.PersistentFlags().Lookup("llm-providers"))

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serve.Flags().String("listen-addr", config.ServerListenAddr, "server listen address")
	_ = viper.BindPFlag("listen_addr", serve.Flags().Lookup("listen-addr"))

	adjudicate := &cobra.Command{
		Use:   "adjudicate FILE...",
		Short: "Run one claim through the pipeline locally and print the decision as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdjudicate,
	}

	root.AddCommand(serve, adjudicate)
	return root
}
