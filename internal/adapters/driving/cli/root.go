// Package cli implements the quala command line interface on top of the
// driving ports. Services are injected by the composition root, either
// directly with SetServices or lazily through a Bootstrap that runs once
// the global flags are parsed.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by the commands.
var (
	projectService    driving.ProjectService
	fileService       driving.FileService
	annotationService driving.AnnotationService
	groupService      driving.GroupService
	renderService     driving.RenderService
	tabulationService driving.TabulationService
	synonymService    driving.SynonymService
	transferService   driving.TransferService
	settingsService   driving.SettingsService
)

// Services bundles the driving ports the commands need.
type Services struct {
	Project    driving.ProjectService
	File       driving.FileService
	Annotation driving.AnnotationService
	Group      driving.GroupService
	Render     driving.RenderService
	Tabulation driving.TabulationService
	Synonyms   driving.SynonymService
	Transfer   driving.TransferService
	Settings   driving.SettingsService
}

// Bootstrap builds the services for a config directory. An empty directory
// means ~/.quala. The returned close function releases stores.
type Bootstrap func(ctx context.Context, configDir string) (*Services, func() error, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	projectService = s.Project
	fileService = s.File
	annotationService = s.Annotation
	groupService = s.Group
	renderService = s.Render
	tabulationService = s.Tabulation
	synonymService = s.Synonyms
	transferService = s.Transfer
	settingsService = s.Settings
}

// SetBootstrap installs the lazy service builder. It is only called when
// no services were set directly.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by "quala version".
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "quala",
	Short: "Qualitative text annotation from the terminal",
	Long: `Quala annotates text for qualitative data analysis.

Import interview transcripts and notes into projects, tag passages, save
searches that re-index every file, group marks into themes and
cross-tabulate how often they co-occur.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closeServices == nil {
			return nil
		}
		closeFn := closeServices
		closeServices = nil
		return closeFn()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.quala)")
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipBootstrap] != "" || bootstrap == nil || projectService != nil {
		return nil
	}

	done := logger.Timed("bootstrap")
	defer done()

	s, closeFn, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	SetServices(s)
	closeServices = closeFn
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
