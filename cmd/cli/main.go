package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletd-cli",
		Short: "Wallet CLI tool",
		Long:  `A command line interface for interacting with the wallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(createAccountCmd(), balanceCmd(), transactionsCmd(), watchCmd())
	rootCmd.AddCommand(accountCmd)

	rootCmd.AddCommand(depositCmd(), transferCmd())

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <account-id>",
		Short: "Initialize an account at zero balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]string{"account_id": args[0]}
			postJSON("/api/v1/accounts", body, http.StatusCreated)
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/balance")
		},
	}
}

func transactionsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List an account's transaction history, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d&offset=%d", args[0], limit, offset))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of records")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of records to skip")

	return cmd
}

func depositCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Credit an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]string{"amount": args[1]}
			if description != "" {
				body["description"] = description
			}
			postJSON("/api/v1/accounts/"+args[0]+"/deposits", body, http.StatusCreated)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Free-form note on the record")

	return cmd
}

func transferCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "transfer <sender-id> <recipient-id> <amount>",
		Short: "Move funds between two accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]string{
				"sender_id":    args[0],
				"recipient_id": args[1],
				"amount":       args[2],
			}
			if description != "" {
				body["description"] = description
			}
			postJSON("/api/v1/transfers", body, http.StatusCreated)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Free-form note on the records")

	return cmd
}

func watchCmd() *cobra.Command {
	var records bool

	cmd := &cobra.Command{
		Use:   "watch <account-id>",
		Short: "Stream live balance or record updates",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/accounts/" + args[0] + "/balance/stream"
			if records {
				path = "/api/v1/accounts/" + args[0] + "/transactions/stream"
			}
			watchStream(path)
		},
	}

	cmd.Flags().BoolVar(&records, "records", false, "Stream transaction records instead of the balance")

	return cmd
}

func postJSON(path string, body any, wantStatus int) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	printRawJSON(data)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	printRawJSON(data)
}

// watchStream follows a server-sent events endpoint until interrupted.
func watchStream(path string) {
	// No timeout: the stream stays open until the user interrupts.
	client := &http.Client{}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	scanner := bufio.NewScanner(resp.Body)
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			fmt.Printf("[%s] %s\n", event, strings.TrimPrefix(line, "data: "))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Stream closed: %v\n", err)
		os.Exit(1)
	}
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Printf("Consistency check PASSED\n")
	} else {
		fmt.Printf("Consistency check FAILED\n")
	}
	fmt.Printf("Total balance: %v\n", result["total_balance"])
	fmt.Printf("Total deposited: %v\n", result["total_deposited"])
	fmt.Printf("Drift: %v\n", result["drift"])
}

func printRawJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(pretty.String())
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
