package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nippo/internal/config"
	"nippo/internal/domain"
	"nippo/internal/httpx"
	"nippo/internal/integrations/llm"
	"nippo/internal/integrations/webhook"
	"nippo/internal/nudge"
	"nippo/internal/report"
	"nippo/internal/staff"
	"nippo/internal/storage/sqlite"
)

func NewRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "nippo",
		Short:         "日報 (daily work report) logging tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newReportCmd(cfg),
		newStaffCmd(cfg),
		newSettingsCmd(cfg),
		newAnalyzeCmd(cfg),
		newRemindCmd(cfg),
	)
	return root
}

func openStore(cfg config.Config) (*sqlite.Store, func()) {
	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	return sqlite.NewStore(db), func() { _ = db.Close() }
}

// --- report ---

func newReportCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Submit, edit, list and export daily reports",
	}
	cmd.AddCommand(
		newReportSubmitCmd(cfg),
		newReportEditCmd(cfg),
		newReportListCmd(cfg),
		newReportShowCmd(cfg),
		newReportExportCmd(cfg),
	)
	return cmd
}

func newReportSubmitCmd(cfg config.Config) *cobra.Command {
	var file string
	var staffName string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new daily report from a YAML form file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			form, err := loadForm(file)
			if err != nil {
				return err
			}
			if staffName != "" {
				form.StaffName = staffName
			}

			ctrl := report.NewController(store)
			rep, err := ctrl.Submit(form, nil)
			if err != nil {
				return err
			}

			notifier := webhook.NewNotifier(httpx.Client())
			notifier.ReportSubmitted(store.LoadSettings(), rep)
			notifier.NotifySlack(cfg.SlackWebhookURL, rep)

			fmt.Fprintf(cmd.OutOrStdout(), "日報を保存しました (id=%s)\n\n%s\n", rep.ID, rep.RawText)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form file")
	cmd.Flags().StringVar(&staffName, "staff", "", "submitting staff name (overrides the form file)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newReportEditCmd(cfg config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit <report-id>",
		Short: "Edit a stored report; fields absent from the file keep their stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			ctrl := report.NewController(store)
			stored, ok := ctrl.FindByID(args[0])
			if !ok {
				return fmt.Errorf("report not found: %s", args[0])
			}

			form := ctrl.EditForm(stored)
			if err := overlayForm(&form, file); err != nil {
				return err
			}

			rep, err := ctrl.Submit(form, &stored)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "日報を更新しました (id=%s)\n\n%s\n", rep.ID, rep.RawText)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form file with the fields to change")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newReportListCmd(cfg config.Config) *cobra.Command {
	var search string
	var staffFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show report history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			reports := store.LoadReports()
			reports = report.Search(reports, search)
			reports = report.FilterByStaff(reports, staffFilter)

			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "日報が見つかりません")
				return nil
			}
			for _, r := range reports {
				flexTag := ""
				if r.WorkType == domain.WorkTypeFlex {
					flexTag = " [FLEX]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-12s %s%s\n",
					r.ID, r.Date, r.StaffName, r.WorkHours, flexTag)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match work content, date or staff name")
	cmd.Flags().StringVar(&staffFilter, "staff", report.StaffFilterAll, "exact staff name, or 'all'")
	return cmd
}

func newReportShowCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <report-id>",
		Short: "Print one report in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			ctrl := report.NewController(store)
			rep, ok := ctrl.FindByID(args[0])
			if !ok {
				return fmt.Errorf("report not found: %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "提出: %s (%s)\n\n%s\n", rep.StaffName, rep.SubmittedAt, rep.RawText)
			return nil
		},
	}
}

func newReportExportCmd(cfg config.Config) *cobra.Command {
	var start, end, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a date range as CSV (chronological order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			filtered := report.FilterByDateRange(store.LoadReports(), start, end)
			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "対象期間のデータがありません。")
				return nil
			}

			if out == "" {
				out = report.ExportFilename(start, end)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := report.WriteCSV(f, filtered); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d件を %s に出力しました\n", len(filtered), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default daily_reports_<start>_to_<end>.csv)")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

// --- staff ---

func newStaffCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage the staff registry",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			s, err := staff.NewRegistry(store).Add(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "スタッフを追加しました: %s (color=%s)\n", s.Name, s.Color)
			return nil
		},
	}

	var color string
	rename := &cobra.Command{
		Use:   "rename <current-name> <new-name>",
		Short: "Rename a staff member (historical reports keep the old name)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			s, err := staff.NewRegistry(store).Rename(args[0], args[1], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "スタッフ名を変更しました: %s\n", s.Name)
			return nil
		},
	}
	rename.Flags().StringVar(&color, "color", "", "display color ("+strings.Join(staff.Palette, ", ")+")")

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			staffs := staff.NewRegistry(store).List()
			if len(staffs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "スタッフが登録されていません")
				return nil
			}
			for _, s := range staffs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s color=%-8s joined=%s\n", s.Name, s.Color, s.JoinedAt)
			}
			return nil
		},
	}

	cmd.AddCommand(add, rename, list)
	return cmd
}

// --- settings ---

func newSettingsCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change app settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			s := store.LoadSettings()
			fmt.Fprintf(cmd.OutOrStdout(),
				"staff_name:         %s\nwebhook_url:        %s\nemail_recipient:    %s\ndefault_work_hours: %s\n\nreport_template:\n%s\n",
				s.StaffName, s.WebhookURL, s.EmailRecipient, s.DefaultWorkHours, s.ReportTemplate)
			return nil
		},
	}

	var staffName, webhookURL, email, workHours, templateFile string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeDB := openStore(cfg)
			defer closeDB()

			s := store.LoadSettings()
			if cmd.Flags().Changed("staff-name") {
				s.StaffName = staffName
			}
			if cmd.Flags().Changed("webhook-url") {
				s.WebhookURL = webhookURL
			}
			if cmd.Flags().Changed("email") {
				s.EmailRecipient = email
			}
			if cmd.Flags().Changed("default-work-hours") {
				s.DefaultWorkHours = workHours
			}
			if cmd.Flags().Changed("template-file") {
				data, err := os.ReadFile(templateFile)
				if err != nil {
					return err
				}
				s.ReportTemplate = string(data)
			}
			if err := store.SaveSettings(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "設定を保存しました")
			return nil
		},
	}
	set.Flags().StringVar(&staffName, "staff-name", "", "default submitter name")
	set.Flags().StringVar(&webhookURL, "webhook-url", "", "report webhook URL (empty disables)")
	set.Flags().StringVar(&email, "email", "", "notification email recipient")
	set.Flags().StringVar(&workHours, "default-work-hours", "", "default shift string")
	set.Flags().StringVar(&templateFile, "template-file", "", "file containing the report template")

	cmd.AddCommand(show, set)
	return cmd
}

// --- analyze ---

func newAnalyzeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <report-id>",
		Short: "Run AI analysis on a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AnthropicAPIKey == "" {
				return fmt.Errorf("anthropic_api_key is required for analysis (config.yaml or ANTHROPIC_API_KEY)")
			}

			store, closeDB := openStore(cfg)
			defer closeDB()

			ctrl := report.NewController(store)
			rep, ok := ctrl.FindByID(args[0])
			if !ok {
				return fmt.Errorf("report not found: %s", args[0])
			}

			analyzer := llm.NewAnalyzer(cfg.AnthropicAPIKey, cfg.LLMModel)
			analysis := analyzer.Analyze(context.Background(), rep.RawText)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "要約: %s\n", analysis.Summary)
			for _, s := range analysis.Suggestions {
				fmt.Fprintf(out, "提案: %s\n", s)
			}
			fmt.Fprintf(out, "所感: %s\n", analysis.Sentiment)
			return nil
		},
	}
}

// --- remind ---

func newRemindCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the daily submit-reminder scheduler (blocks)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := nudge.StartScheduler(cfg, httpx.Client())
			if err != nil {
				return err
			}
			defer c.Stop()
			select {}
		},
	}
}

func loadForm(path string) (report.FormState, error) {
	var form report.FormState
	err := overlayForm(&form, path)
	return form, err
}

func overlayForm(form *report.FormState, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read form file: %w", err)
	}
	if err := yaml.Unmarshal(data, form); err != nil {
		return fmt.Errorf("parse form file %s: %w", path, err)
	}
	return nil
}
