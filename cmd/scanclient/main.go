// scanclient is the operator-side scanning tool: it reads scanned
// credentials line by line (a QR reader in keyboard-wedge mode, or stdin for
// manual entry) and forwards them to the check-in endpoint one at a time,
// showing each outcome before the next scan is accepted.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"studentorg_backend/internals/scanner"
)

var (
	apiBase   string
	sessionID string
	authToken string
	dwell     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "scanclient",
	Short: "Attendance scanning client for event sessions",
	Long: `scanclient reads check-in credentials from stdin (one per line) and
submits them to the attendance API. Duplicate reads while a submission is in
flight are discarded, and every outcome is shown for a short dwell before
scanning resumes.`,
	RunE: runScan,
}

func init() {
	rootCmd.Flags().StringVar(&apiBase, "api", "http://localhost:3000", "API base URL")
	rootCmd.Flags().StringVar(&sessionID, "session", "", "event session ID to check in against")
	rootCmd.Flags().StringVar(&authToken, "token", "", "bearer token of the scanning operator")
	rootCmd.Flags().DurationVar(&dwell, "dwell", 2*time.Second, "how long each outcome stays on screen")
	_ = rootCmd.MarkFlagRequired("session")
	_ = rootCmd.MarkFlagRequired("token")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 10 * time.Second}
	src := scanner.NewLineSource(os.Stdin)
	coord := scanner.New(src, checkInFunc(client), scanner.Options{Dwell: dwell})

	go func() {
		for res := range coord.Results() {
			printResult(res)
		}
	}()

	fmt.Println("📷 Scanning... present codes one per line (Ctrl+C to stop)")
	err := coord.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// checkInFunc submits one credential; transport problems map to
// OutcomeTransport, everything else to the business outcome the server
// reported.
func checkInFunc(client *http.Client) scanner.CheckInFunc {
	return func(ctx context.Context, credential string) scanner.Result {
		url := fmt.Sprintf("%s/api/u/sessions/%s/check-in", strings.TrimRight(apiBase, "/"), sessionID)

		body, _ := sonic.Marshal(map[string]string{"credential": credential})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return scanner.Result{Kind: scanner.OutcomeTransport, Message: err.Error(), Payload: credential}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+authToken)

		resp, err := client.Do(req)
		if err != nil {
			return scanner.Result{Kind: scanner.OutcomeTransport, Message: err.Error(), Payload: credential}
		}
		defer resp.Body.Close()

		var env envelope
		raw, _ := io.ReadAll(resp.Body)
		if err := sonic.Unmarshal(raw, &env); err != nil {
			return scanner.Result{
				Kind:    scanner.OutcomeTransport,
				Message: fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
				Payload: credential,
			}
		}

		switch {
		case resp.StatusCode == http.StatusCreated:
			return scanner.Result{Kind: scanner.OutcomeSuccess, Message: env.Message, Payload: credential}
		case resp.StatusCode == http.StatusConflict && strings.Contains(strings.ToLower(env.Message), "already recorded"):
			return scanner.Result{Kind: scanner.OutcomeAlreadyRecorded, Message: env.Message, Payload: credential}
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return scanner.Result{Kind: scanner.OutcomeRejected, Message: env.Message, Payload: credential}
		default:
			return scanner.Result{
				Kind:    scanner.OutcomeTransport,
				Message: fmt.Sprintf("server error (HTTP %d)", resp.StatusCode),
				Payload: credential,
			}
		}
	}
}

func printResult(res scanner.Result) {
	switch res.Kind {
	case scanner.OutcomeSuccess:
		fmt.Printf("✅ %s\n", res.Message)
	case scanner.OutcomeAlreadyRecorded:
		fmt.Printf("ℹ️  %s\n", res.Message)
	case scanner.OutcomeRejected:
		fmt.Printf("❌ %s\n", res.Message)
	case scanner.OutcomeTransport:
		fmt.Printf("⚠️  %s\n", res.Message)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("scanclient: %v", err)
	}
}
