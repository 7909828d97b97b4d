package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wage-settlement/internal/config"
	"wage-settlement/internal/domain"
	"wage-settlement/internal/gateway"
	"wage-settlement/internal/usecase"
)

var (
	attendanceFile string
	paymentFile    string
	ratesFile      string
	auditDir       string

	personName   string
	roleName     string
	projectName  string
	projectEnded string

	verbose             bool
	showNotes           bool
	showChecks          bool
	showAudit           bool
	showLogsInCompact   bool
	showLogsInDetail    bool
	requireProjectEnded bool
	roadPassphrase      string
	singleYesRate       string
	singleNoRate        string
	dailyGroupRate      string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "settler",
	Short: "Per-worker wage settlement over attendance and payment tables",
	Long: `settler computes one worker's wage settlement from two CSV tables
(daily attendance and expense/payment transactions, possibly the same merged
file), validates the inputs against the fixed rule set, and prints either a
blocking diagnostic or the two-segment settlement report. Every invocation
writes one audit record under the logs directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSettle,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&attendanceFile, "attendance", "", "path to the attendance CSV (required)")
	flags.StringVar(&paymentFile, "payment", "", "path to the payment CSV (defaults to the attendance file for merged tables)")
	flags.StringVar(&ratesFile, "rates", "", "optional YAML rate table overriding the built-in defaults")
	flags.StringVar(&auditDir, "audit-dir", "logs", "directory for audit records")

	flags.StringVar(&personName, "person", "", "target person name (required)")
	flags.StringVar(&roleName, "role", "", "role: 组长 or 组员 (required)")
	flags.StringVar(&projectName, "project", "", "project name; required when the tables span multiple projects")
	flags.StringVar(&projectEnded, "project-ended", "", "项目已结束: 是 or 否 (required)")

	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging and full report detail")
	flags.BoolVar(&showNotes, "show-notes", true, "include the notes section in the detailed segment")
	flags.BoolVar(&showChecks, "show-checks", true, "include the check summary in the detailed segment")
	flags.BoolVar(&showAudit, "show-audit", true, "include run/hash metadata in the detailed segment")
	flags.BoolVar(&showLogsInCompact, "show-logs-in-compact", true, "append the audit log path to the compact segment")
	flags.BoolVar(&showLogsInDetail, "show-logs-in-detail", false, "inline every normalization/conflict log line")
	flags.BoolVar(&requireProjectEnded, "require-project-ended", false, "block unless 项目已结束=是")
	flags.StringVar(&roadPassphrase, "road", "", "road allowance passphrase: 计算路补 or 无路补")
	flags.StringVar(&singleYesRate, "single-yes", "", "override: solo-mode worked-day rate")
	flags.StringVar(&singleNoRate, "single-no", "", "override: solo-mode absent-day rate")
	flags.StringVar(&dailyGroupRate, "daily-group", "", "override: group-mode daily rate")

	_ = rootCmd.MarkFlagRequired("attendance")
	_ = rootCmd.MarkFlagRequired("person")
	_ = rootCmd.MarkFlagRequired("role")
}

func parseRateFlag(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return &rate, nil
}

func buildDirective() (domain.Directive, error) {
	directive := domain.Directive{
		PersonName:  personName,
		Role:        domain.Role(roleName),
		ProjectName: projectName,
	}
	switch projectEnded {
	case "":
	case "是", "true", "1":
		ended := true
		directive.ProjectEnded = &ended
	case "否", "false", "0":
		ended := false
		directive.ProjectEnded = &ended
	default:
		return directive, fmt.Errorf("invalid --project-ended value %q: want 是 or 否", projectEnded)
	}

	singleYes, err := parseRateFlag("single-yes", singleYesRate)
	if err != nil {
		return directive, err
	}
	singleNo, err := parseRateFlag("single-no", singleNoRate)
	if err != nil {
		return directive, err
	}
	dailyGroup, err := parseRateFlag("daily-group", dailyGroupRate)
	if err != nil {
		return directive, err
	}

	directive.Options = domain.Options{
		Verbose:             verbose,
		ShowNotes:           showNotes,
		ShowChecks:          showChecks,
		ShowAudit:           showAudit,
		ShowLogsInCompact:   showLogsInCompact,
		ShowLogsInDetail:    showLogsInDetail,
		SingleYesRate:       singleYes,
		SingleNoRate:        singleNo,
		DailyGroupRate:      dailyGroup,
		RoadPassphrase:      roadPassphrase,
		AttendanceSource:    attendanceFile,
		PaymentSource:       paymentFile,
		RequireProjectEnded: requireProjectEnded,
	}
	return directive, nil
}

func runSettle(cmd *cobra.Command, args []string) error {
	if paymentFile == "" {
		paymentFile = attendanceFile
	}

	rates := config.Default()
	if ratesFile != "" {
		var err error
		rates, err = config.Load(ratesFile)
		if err != nil {
			return err
		}
	}

	directive, err := buildDirective()
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo := gateway.NewCSVRowRepository()

	attendanceRows, err := repo.GetRows(ctx, attendanceFile)
	if err != nil {
		return fmt.Errorf("could not load attendance rows: %w", err)
	}
	paymentRows := attendanceRows
	if paymentFile != attendanceFile {
		paymentRows, err = repo.GetRows(ctx, paymentFile)
		if err != nil {
			return fmt.Errorf("could not load payment rows: %w", err)
		}
	}

	settler := usecase.NewSettler(gateway.NewFileAuditWriter(auditDir), rates, logger)
	output, err := settler.SettlePerson(ctx, attendanceRows, paymentRows, directive)
	if err != nil {
		return err
	}

	fmt.Println(output.Report)
	if output.Blocked {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
