// Session log commands: add, list, stats, clear.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankrollbuddy/bankroll/internal/app/tracker"
	"github.com/bankrollbuddy/bankroll/internal/daemon"
	"github.com/bankrollbuddy/bankroll/internal/domain"
	"github.com/bankrollbuddy/bankroll/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionStatsCmd)
	sessionCmd.AddCommand(sessionClearCmd)

	sessionAddCmd.Flags().String("stakes", "", "Stakes played, e.g. 1/2")
	sessionClearCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

// openTracker opens the configured database and wraps it in the service.
// The caller must Close the returned DB.
func openTracker() (*tracker.Service, *sqlite.DB, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return tracker.New(db), db, nil
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the session log",
}

// ─── session add ────────────────────────────────────────────────────────────

var sessionAddCmd = &cobra.Command{
	Use:   "add GAME_NAME BUY_IN CASH_OUT",
	Short: "Log a finished session",
	Args:  cobra.ExactArgs(3),
	RunE:  runSessionAdd,
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	buyIn, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("buy-in %q is not a number", args[1])
	}
	cashOut, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("cash-out %q is not a number", args[2])
	}
	stakes, _ := cmd.Flags().GetString("stakes")

	svc, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	sess, err := svc.Add(args[0], buyIn, cashOut, stakes)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s: %s\n", sess.GameName, gainLossLabel(sess.GainLoss))
	return nil
}

func gainLossLabel(gl domain.Cents) string {
	if gl >= 0 {
		return "+" + gl.String()
	}
	return gl.String()
}

// ─── session list ───────────────────────────────────────────────────────────

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged sessions, oldest first",
	RunE:  runSessionList,
}

func runSessionList(cmd *cobra.Command, args []string) error {
	svc, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := svc.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions logged yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tGAME\tSTAKES\tBUY-IN\tCASH-OUT\tGAIN/LOSS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.CreatedAt.Format("2006-01-02"), s.GameName, s.Stakes,
			s.BuyIn, s.CashOut, gainLossLabel(s.GainLoss))
	}
	return w.Flush()
}

// ─── session stats ──────────────────────────────────────────────────────────

var sessionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show whole-log totals and averages",
	RunE:  runSessionStats,
}

func runSessionStats(cmd *cobra.Command, args []string) error {
	svc, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := svc.Stats()
	if err != nil {
		return err
	}
	printStats(st)
	return nil
}

func printStats(st tracker.Stats) {
	fmt.Printf("Games played:     %d\n", st.GamesPlayed)
	fmt.Printf("Total buy-in:     %.2f\n", st.TotalBuyIn)
	fmt.Printf("Total cash-out:   %.2f\n", st.TotalCashOut)
	fmt.Printf("Total gain/loss:  %+.2f\n", st.TotalGainLoss)
	if st.GamesPlayed > 0 {
		fmt.Printf("Avg buy-in:       %.2f\n", st.AverageBuyIn)
		fmt.Printf("Avg cash-out:     %.2f\n", st.AverageCashOut)
		fmt.Printf("Avg gain/loss:    %+.2f\n", st.AverageGainLoss)
	}
}

// ─── session clear ──────────────────────────────────────────────────────────

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every logged session",
	RunE:  runSessionClear,
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Print("Delete ALL sessions? This cannot be undone. Type 'yes' to confirm: ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	svc, db, err := openTracker()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := svc.Clear(); err != nil {
		return err
	}
	fmt.Println("Session log cleared.")
	return nil
}
