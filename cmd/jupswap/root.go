package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shihanhana/jupiter-swap-api-client/internal/config"
	"github.com/shihanhana/jupiter-swap-api-client/internal/metrics"
	"github.com/shihanhana/jupiter-swap-api-client/internal/util"
	"github.com/shihanhana/jupiter-swap-api-client/internal/wallet"
	"github.com/shihanhana/jupiter-swap-api-client/pkg/jupiter"
)

const defaultConfigPath = "internal/config/config.yaml"

// app holds what every subcommand needs once the root has loaded the config.
type app struct {
	configPath string
	amount     uint64

	cfg    *config.Config
	log    zerolog.Logger
	client *jupiter.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "jupswap",
		Short:         "Query a Jupiter swap API deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "path to YAML config")
	root.PersistentFlags().Uint64Var(&a.amount, "amount", 0, "override quote amount (smallest units)")

	root.AddCommand(
		&cobra.Command{
			Use:   "health",
			Short: "Check the service is up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				resp, err := a.client.Health(cmd.Context())
				if err != nil {
					return fmt.Errorf("health: %w", err)
				}
				return printJSON(cmd, resp)
			},
		},
		&cobra.Command{
			Use:   "quote",
			Short: "Fetch a quote for the configured pair",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				quote, err := a.quote(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, quote)
			},
		},
		&cobra.Command{
			Use:   "swap",
			Short: "Quote, then build the serialized swap transaction",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				resp, err := a.swap(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			},
		},
		&cobra.Command{
			Use:   "instructions",
			Short: "Quote, then fetch the swap as individual instructions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				resp, err := a.instructions(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			},
		},
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.amount > 0 {
		cfg.Quote.Amount = a.amount
	}
	cfg.Jupiter.BaseURL = getEnv("JUPITER_BASE_URL", cfg.Jupiter.BaseURL)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = util.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	if cfg.App.MetricsAddr != "" {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		a.log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}
	a.client = jupiter.NewClient(
		cfg.Jupiter.BaseURL,
		jupiter.WithLogger(a.log),
		jupiter.WithHTTPClient(&http.Client{Timeout: cfg.Jupiter.Timeout()}),
	)
	return nil
}

func (a *app) quote(ctx context.Context) (*jupiter.QuoteResponse, error) {
	inputMint, err := solana.PublicKeyFromBase58(a.cfg.Quote.InputMint)
	if err != nil {
		return nil, fmt.Errorf("input mint: %w", err)
	}
	outputMint, err := solana.PublicKeyFromBase58(a.cfg.Quote.OutputMint)
	if err != nil {
		return nil, fmt.Errorf("output mint: %w", err)
	}

	start := time.Now()
	quote, err := a.client.Quote(ctx, &jupiter.QuoteRequest{
		InputMint:        inputMint,
		OutputMint:       outputMint,
		Amount:           a.cfg.Quote.Amount,
		SlippageBps:      a.cfg.Quote.SlippageBps,
		OnlyDirectRoutes: jupiter.Ptr(a.cfg.Quote.OnlyDirectRoutes),
		QuoteArgs:        a.cfg.Jupiter.QuoteArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	a.log.Info().
		Uint64("in", quote.InAmount).
		Uint64("out", quote.OutAmount).
		Int("hops", len(quote.RoutePlan)).
		Dur("took", time.Since(start)).
		Msg("quote")
	return quote, nil
}

func (a *app) swapRequest(ctx context.Context) (*jupiter.SwapRequest, error) {
	quote, err := a.quote(ctx)
	if err != nil {
		return nil, err
	}
	user, err := wallet.UserPublicKey()
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	return &jupiter.SwapRequest{
		UserPublicKey: user,
		QuoteResponse: *quote,
		Config:        transactionConfig(a.cfg.Swap),
	}, nil
}

func (a *app) swap(ctx context.Context) (*jupiter.SwapResponse, error) {
	req, err := a.swapRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Swap(ctx, req, a.cfg.Jupiter.SwapArgs)
	if err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}
	if tx, err := resp.Transaction(); err == nil {
		a.log.Info().
			Int("instructions", len(tx.Message.Instructions)).
			Uint64("last_valid_block_height", resp.LastValidBlockHeight).
			Msg("swap transaction built")
	}
	return resp, nil
}

func (a *app) instructions(ctx context.Context) (*jupiter.SwapInstructionsResponse, error) {
	req, err := a.swapRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.SwapInstructions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("swap instructions: %w", err)
	}
	a.log.Info().
		Int("instructions", len(resp.Instructions())).
		Int("lookup_tables", len(resp.AddressLookupTableAddresses)).
		Msg("swap instructions")
	return resp, nil
}

func transactionConfig(s config.Swap) jupiter.TransactionConfig {
	tc := jupiter.TransactionConfig{WrapAndUnwrapSol: s.WrapAndUnwrapSol}
	if s.DynamicComputeUnitLimit {
		tc.DynamicComputeUnitLimit = jupiter.Ptr(true)
	}
	if s.PriorityFeeLamports != nil {
		tc.PrioritizationFeeLamports = &jupiter.PrioritizationFeeLamports{Lamports: s.PriorityFeeLamports}
	}
	return tc
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
