package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/studydesk/internal/api"
	"github.com/zhubert/studydesk/internal/app"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/clipboard"
	"github.com/zhubert/studydesk/internal/config"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/notification"
)

var (
	debugMode             bool
	quietMode             bool
	offlineMode           bool
	studentFlag           string
	apiFlag               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "studydesk",
	Short: "Terminal desk for study-abroad applications",
	Long: `studydesk is a terminal front-end for a study-abroad consultancy.
Advisors and admins triage every student's university applications, chat with
students, manage documents and edit profiles. Students follow their own
applications, upload documents and complete their profile.

The signed-in role is read from the access token (STUDYDESK_TOKEN or the
token in ~/.studydesk/config.json).`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "Backend base URL (overrides config and STUDYDESK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&offlineMode, "offline", false, "Use built-in demo data instead of the backend")
	rootCmd.Flags().StringVar(&studentFlag, "student", "", "Open the student pages for this student id (advisors and admins)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("studydesk %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("studydesk %s\n", version)
}

// demoCapability is who --offline signs in as when there is no token
var demoCapability = auth.Capability{UserID: demo.AdvisorID, Name: "Demo Advisor", Role: auth.RoleAdvisor}

// connect decodes the caller's capability and builds the backend for it.
// Offline, the demo backend answers as whoever the token names, or as the
// demo advisor without one.
func connect(cfg *config.Config) (app.Service, auth.Capability, error) {
	token := cfg.GetToken()
	if offlineMode {
		c := demoCapability
		if token != "" {
			if decoded, err := auth.FromToken(token); err == nil {
				c = decoded
			}
		}
		return demo.NewBackend(c), c, nil
	}

	if token == "" {
		return nil, auth.Capability{}, fmt.Errorf("no access token: set %s or add \"token\" to %s", config.EnvToken, cfg.Path())
	}
	c, err := auth.FromToken(token)
	if err != nil {
		return nil, auth.Capability{}, err
	}

	baseURL := apiFlag
	if baseURL == "" {
		baseURL = cfg.GetAPIURL()
	}
	client, err := api.NewClient(api.ClientConfig{BaseURL: baseURL, Token: token})
	if err != nil {
		return nil, auth.Capability{}, err
	}
	return client, c, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	svc, c, err := connect(cfg)
	if err != nil {
		return err
	}
	logger.ComponentLogger("CLI").Info("starting", "version", version, "capability", c.String(), "offline", offlineMode)

	notification.SetEnabled(cfg.GetNotificationsEnabled())
	if err := clipboard.Init(); err != nil {
		// Copy shortcuts report the failure when used
		logger.ComponentLogger("CLI").Warn("clipboard unavailable", "error", err)
	}

	studentID := studentFlag
	if studentID == "" {
		studentID = cfg.GetStudentID()
	}

	// Create and run the app
	m := app.New(cfg, svc, app.Options{
		Capability: c,
		StudentID:  studentID,
		Version:    version,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
