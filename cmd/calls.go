package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnloop/internal/store"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Inspect logged agent calls",
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent agent calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		requestType, _ := cmd.Flags().GetString("type")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		calls, err := st.EventRepo().QueryAgentCalls(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(calls) == 0 {
			fmt.Fprintln(out, "No agent calls found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-6s  %-7s  %-2s  %s\n",
			"ID", "Timestamp", "Type", "Status", "Ms", "OK", "Target")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, c := range calls {
			if requestType != "" && c.RequestType != requestType {
				continue
			}
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			status := "-"
			if c.StatusCode != 0 {
				status = strconv.Itoa(c.StatusCode)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-6s  %-7d  %-2s  %s\n",
				c.ID,
				c.Timestamp.Local().Format("2006-01-02 15:04:05"),
				c.RequestType,
				status,
				c.LatencyMs,
				ok,
				c.Target,
			)
		}
		return nil
	},
}

var callsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of an agent call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.EventRepo().GetAgentCall(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("agent call %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get agent call: %w", err)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", c.ID)
		fmt.Fprintf(out, "Time:      %s\n", c.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Session:   %s\n", c.SessionID)
		fmt.Fprintf(out, "Type:      %s\n", c.RequestType)
		fmt.Fprintf(out, "Agent:     %s\n", c.AgentID)
		fmt.Fprintf(out, "Target:    %s\n", c.Target)
		if c.StatusCode != 0 {
			fmt.Fprintf(out, "Status:    %d\n", c.StatusCode)
		}
		fmt.Fprintf(out, "Latency:   %dms\n", c.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", c.ErrorMessage)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "MESSAGE")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, c.Message)

		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "RESPONSE")
		fmt.Fprintln(out, sep)
		if c.ResponseBody != "" {
			fmt.Fprintln(out, c.ResponseBody)
		} else {
			fmt.Fprintln(out, "(not captured)")
		}
		return nil
	},
}

func init() {
	callsListCmd.Flags().Int("limit", 20, "Maximum number of calls to show")
	callsListCmd.Flags().String("type", "", "Filter by request type (explain, quiz, evaluate)")

	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsViewCmd)
}
