// Command lotuscalc runs the tranche engine over a preset from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"lotus-engine/domain"
	"lotus-engine/engine"
	"lotus-engine/logging"
	"lotus-engine/presets"
	"lotus-engine/service"
)

type options struct {
	preset      string
	presetsFile string
	pending     bool
	period      string
	badDebt     string
	jsonOut     bool
	scenario    int
	borrowRate  float64
	baseRate    float64
	utilization float64
}

type report struct {
	Tranches      domain.TrancheResponse          `json:"tranches"`
	FundingMatrix domain.FundingMatrix            `json:"fundingMatrix"`
	Interest      domain.InterestSimulationResult `json:"interest"`
	BadDebt       *domain.BadDebtSimulationResult `json:"badDebt,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "lotuscalc:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lotuscalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.preset, "preset", "docExample", "preset name, or \"default\" for the reset configuration")
	fs.StringVar(&opts.presetsFile, "presets", "", "YAML preset catalog overriding the builtin one")
	fs.BoolVar(&opts.pending, "pending", false, "include pending interest in supply")
	fs.StringVar(&opts.period, "period", string(domain.Period1Year), "interest simulation period: 1week, 1month, 3months or 1year")
	fs.StringVar(&opts.badDebt, "bad-debt", "", "bad debt events as idx:amount,idx:amount")
	fs.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of tables")
	fs.IntVar(&opts.scenario, "scenario", 0, "evaluate rate scenario 1 or 2 instead of a preset")
	fs.Float64Var(&opts.borrowRate, "R", service.DefaultScenarioState.BorrowRate, "borrow rate (scenario 1) or target borrow rate at 90% (scenario 2)")
	fs.Float64Var(&opts.baseRate, "Rb", service.DefaultScenarioState.BaseRate, "base rate")
	fs.Float64Var(&opts.utilization, "u", service.DefaultScenarioState.Utilization, "utilization")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.scenario != 0 && opts.scenario != 1 && opts.scenario != 2 {
		return options{}, fmt.Errorf("-scenario must be 1 or 2, got %d", opts.scenario)
	}
	return opts, nil
}

// parseBadDebt reads "idx:amount" pairs separated by commas.
func parseBadDebt(raw string) ([]domain.BadDebtEvent, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var events []domain.BadDebtEvent
	for _, part := range strings.Split(raw, ",") {
		idxStr, amountStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("bad debt event %q: expected idx:amount", part)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil {
			return nil, fmt.Errorf("bad debt event %q: invalid index: %w", part, err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
		if err != nil {
			return nil, fmt.Errorf("bad debt event %q: invalid amount: %w", part, err)
		}
		events = append(events, domain.BadDebtEvent{TrancheIndex: idx, Amount: amount})
	}
	return events, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := logging.SetupWriter(logging.Options{Service: "lotuscalc", Level: slog.LevelWarn}, stderr)

	if opts.scenario != 0 {
		return runScenario(opts, stdout)
	}

	catalog, err := presets.Load(opts.presetsFile)
	if err != nil {
		return err
	}
	presetService := service.NewPresetService(catalog)
	tranches := presetService.Default()
	if opts.preset != "default" {
		if tranches, err = presetService.Tranches(opts.preset); err != nil {
			return err
		}
	}
	events, err := parseBadDebt(opts.badDebt)
	if err != nil {
		return err
	}

	ctx := context.Background()
	trancheService := service.NewTrancheService(nil, nil,
		service.WithLogger(logger),
		service.WithInsights(service.NewInsightService("", "", logger)))
	simulations := service.NewSimulationService(trancheService)

	req := domain.TrancheRequest{Tranches: tranches, IncludePendingInterest: opts.pending}
	var rep report
	if rep.Tranches, err = trancheService.Compute(ctx, req); err != nil {
		return err
	}
	if rep.FundingMatrix, err = trancheService.FundingMatrix(ctx, req); err != nil {
		return err
	}
	rep.Interest, err = simulations.InterestAccrual(ctx, domain.InterestSimulationRequest{
		TrancheRequest: req,
		Period:         domain.TimePeriod(opts.period),
	})
	if err != nil {
		return err
	}
	if len(events) > 0 {
		badDebt, err := simulations.BadDebt(ctx, domain.BadDebtSimulationRequest{TrancheRequest: req, Events: events})
		if err != nil {
			return err
		}
		rep.BadDebt = &badDebt
	}

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printReport(stdout, rep)
}

func runScenario(opts options, stdout io.Writer) error {
	svc := service.NewScenarioService()
	var (
		out any
		err error
	)
	if opts.scenario == 2 {
		out, err = svc.Scenario2(domain.Scenario2Inputs{
			TargetBorrowRate90: opts.borrowRate, BaseRate: opts.baseRate, Utilization: opts.utilization,
		})
	} else {
		out, err = svc.Scenario1(domain.Scenario1Inputs{
			BorrowRate: opts.borrowRate, BaseRate: opts.baseRate, Utilization: opts.utilization,
		})
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	switch o := out.(type) {
	case domain.Scenario1Outputs:
		fmt.Fprintf(tw, "Spread\t%s\n", pct(o.Spread))
		fmt.Fprintf(tw, "Supply rate (PD)\t%s\n", pct(o.SupplyRatePD))
		fmt.Fprintf(tw, "Supply rate (no PD)\t%s\n", pct(o.SupplyRateNoPD))
		fmt.Fprintf(tw, "Wedge (PD)\t%s\n", pct(o.WedgePD))
		fmt.Fprintf(tw, "Wedge (no PD)\t%s\n", pct(o.WedgeNoPD))
		fmt.Fprintf(tw, "Wedge reduction\t%s\n", pct(o.WedgeReduction))
	case domain.Scenario2Outputs:
		fmt.Fprintf(tw, "Borrow rate (PD)\t%s\t%s vs target\n", pct(o.BorrowRatePD), engine.FormatPercent(o.BorrowDeviationPD, 2))
		fmt.Fprintf(tw, "Borrow rate (no PD)\t%s\t%s vs target\n", pct(o.BorrowRateNoPD), engine.FormatPercent(o.BorrowDeviationNoPD, 2))
		fmt.Fprintf(tw, "Supply rate (PD)\t%s\t%s vs target\n", pct(o.SupplyRatePD), engine.FormatPercent(o.SupplyDeviationPD, 2))
		fmt.Fprintf(tw, "Supply rate (no PD)\t%s\t%s vs target\n", pct(o.SupplyRateNoPD), engine.FormatPercent(o.SupplyDeviationNoPD, 2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "\nShare: ?%s\n", service.BuildScenarioQuery(domain.ScenarioState{
		Scenario:           opts.scenario,
		BorrowRate:         opts.borrowRate,
		TargetBorrowRate90: opts.borrowRate,
		BaseRate:           opts.baseRate,
		Utilization:        opts.utilization,
	}))
	return err
}

func num(v float64) string { return engine.FormatNumber(&v, 2) }

func pct(v float64) string { return engine.FormatPercent(&v, 2) }

func printReport(w io.Writer, rep report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "LLTV\tSupply\tBorrow\tJr Net\tFree\tAvailable\tSupply Util\tBorrow Util\tBorrow Rate\tSupply Rate\tBinding\t")
	for _, t := range rep.Tranches.Tranches {
		binding := ""
		if t.IsBindingConstraint {
			binding = "*"
		}
		fmt.Fprintf(tw, "%s%%\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			engine.FormatNumber(&t.LLTV, 0), num(t.SupplyAssets), num(t.BorrowAssets),
			num(t.JrNetSupply), num(t.FreeSupply), num(t.AvailableSupply),
			engine.FormatPercentDefault(t.SupplyUtilization), engine.FormatPercentDefault(t.BorrowUtilization),
			pct(t.BorrowRate), engine.FormatPercent(t.SupplyRate, 2), binding)
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t\t\t\t\t\t\t\t\t\n", num(rep.Tranches.TotalSupply), num(rep.Tranches.TotalBorrow))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Funding (lender -> borrower)\tAmount\t% of lender\t% of borrow\t")
	for _, e := range rep.FundingMatrix.Entries {
		fmt.Fprintf(tw, "%d -> %d\t%s\t%s\t%s\t\n", e.LenderIndex, e.BorrowerIndex,
			num(e.Amount), pct(e.PercentOfLenderSupply), pct(e.PercentOfBorrowerBorrow))
	}
	fmt.Fprintf(tw, "Total funded\t%s\t\t\t\n", num(rep.FundingMatrix.TotalFunded))
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Interest over %s\tGenerated\tReceived\tCascaded\tNet\tImplied Rate\t\n", engine.PeriodLabel(rep.Interest.TimePeriod))
	for _, t := range rep.Interest.Tranches {
		fmt.Fprintf(tw, "%s%%\t%s\t%s\t%s\t%s\t%s\t\n", engine.FormatNumber(&t.LLTV, 0),
			num(t.InterestGenerated), num(t.InterestReceived), num(t.InterestCascaded),
			num(t.NetPosition), engine.FormatPercent(t.ImpliedSupplyRate, 2))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t\t\t\t\n", num(rep.Interest.TotalInterestGenerated), num(rep.Interest.TotalInterestReceived))

	if rep.BadDebt != nil {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Bad debt\tLocal\tCascaded In\tAbsorbed\tCascaded Out\tRemaining\tWiped Out\t")
		for _, t := range rep.BadDebt.Tranches {
			wiped := ""
			if t.WipedOut {
				wiped = "yes"
			}
			fmt.Fprintf(tw, "%s%%\t%s\t%s\t%s\t%s\t%s\t%s\t\n", engine.FormatNumber(&t.LLTV, 0),
				num(t.BadDebtLocal), num(t.BadDebtCascadedIn), num(t.BadDebtAbsorbed),
				num(t.BadDebtCascadedOut), num(t.RemainingSupply), wiped)
		}
		fmt.Fprintf(tw, "Total\t%s\t\t%s\t\t\t\t\n", num(rep.BadDebt.TotalBadDebt), num(rep.BadDebt.TotalAbsorbed))
		fmt.Fprintf(tw, "Unabsorbed\t%s\t\t\t\t\t\t\n", num(rep.BadDebt.UnabsorbedBadDebt))
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if rep.Tranches.Insight != "" {
		fmt.Fprintf(w, "\n%s\n", rep.Tranches.Insight)
	}
	return nil
}
