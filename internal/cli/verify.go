package cli

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/tui"
)

var errNotVerified = errors.New("code not verified")

var (
	verifyEmail    string
	verifyBaseURL  string
	verifyLength   int
	verifyTimeout  time.Duration
	verifyCooldown time.Duration
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm a registration code in the terminal",
	Long: `Open an interactive prompt for the verification code sent to --email and
confirm it against a running server.

Example:
  talentflow verify --email joana@example.com --base-url http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyEmail, "email", "", "Email address the code was sent to")
	verifyCmd.Flags().StringVar(&verifyBaseURL, "base-url", "http://localhost:8080", "Server base URL")
	verifyCmd.Flags().IntVar(&verifyLength, "length", otpflow.DefaultLength, "Number of code digits")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 10*time.Second, "Timeout for each server call")
	verifyCmd.Flags().DurationVar(&verifyCooldown, "cooldown", otpflow.DefaultCooldown, "Wait between resends")
	_ = verifyCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	client := newRegistrationClient(verifyBaseURL, verifyTimeout)

	flow, err := otpflow.New(otpflow.Config{
		Length:     verifyLength,
		Identifier: verifyEmail,
		Verify:     client.Verify,
		Resend:     client.Resend,
		Cooldown:   verifyCooldown,
	})
	if err != nil {
		return err
	}
	defer flow.Close()

	model := tui.New(cmd.Context(), flow)
	if _, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("run prompt: %w", err)
	}

	if !model.Verified() {
		return errNotVerified
	}

	return nil
}
