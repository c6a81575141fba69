// Ledger commands: settle a platform CSV export from the terminal.
package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankrollbuddy/bankroll/internal/app/ledger"
	"github.com/bankrollbuddy/bankroll/internal/app/settle"
	"github.com/bankrollbuddy/bankroll/internal/daemon"
	"github.com/bankrollbuddy/bankroll/internal/domain"
	"github.com/bankrollbuddy/bankroll/internal/infra/similarity"
	"github.com/bankrollbuddy/bankroll/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerSettleCmd)

	ledgerSettleCmd.Flags().Float64("threshold", 0, "Alias similarity threshold (default from config)")
	ledgerSettleCmd.Flags().String("scorer", "", "Similarity scorer: dice or levenshtein (default from config)")
	ledgerSettleCmd.Flags().Bool("no-group", false, "Skip alias grouping and settle raw nicknames")
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Work with platform ledger exports",
}

var ledgerSettleCmd = &cobra.Command{
	Use:   "settle FILE.csv",
	Short: "Settle a ledger CSV into who-pays-whom payments",
	Long: `Settle a platform ledger export into the shortest payment list.

The CSV needs a header row with player_nickname, buy_in, buy_out and stack
columns; amounts are in cents, as the platforms export them. Nicknames that
look like the same player are grouped automatically and settled under one
name; pass --no-group to keep every nickname separate.`,
	Args: cobra.ExactArgs(1),
	RunE: runLedgerSettle,
}

func runLedgerSettle(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	if th, _ := cmd.Flags().GetFloat64("threshold"); th > 0 {
		cfg.Settle.Threshold = th
	}
	if sc, _ := cmd.Flags().GetString("scorer"); sc != "" {
		cfg.Settle.Scorer = sc
	}

	rows, err := readLedgerCSV(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s contains no ledger rows", args[0])
	}

	if noGroup, _ := cmd.Flags().GetBool("no-group"); !noGroup {
		resolver := ledger.NewResolver(similarity.ByName(cfg.Settle.Scorer), cfg.Settle.Threshold)
		hub := ledger.NewHub(resolver)
		im := hub.Load(rows)
		im.Confirm()
		rows, err = im.ConfirmedRows()
		if err != nil {
			return err
		}

		for _, g := range im.Groups() {
			if len(g.Members) > 1 {
				fmt.Printf("Grouped %s as %s\n", strings.Join(g.Members, ", "), g.Canonical)
			}
		}
	}

	nets := settle.NetPositionsFromLedger(rows)
	txs := settle.Settle(nets)
	imbalance := settle.Imbalance(nets)

	if len(txs) == 0 {
		fmt.Println("Nothing to settle: everyone is even.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FROM\tTO\tAMOUNT")
		for _, tx := range txs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tx.From, tx.To, tx.Amount)
		}
		w.Flush()
	}
	if imbalance > 0.01 || imbalance < -0.01 {
		fmt.Printf("Warning: ledger is off by %.2f, check the export.\n", imbalance)
	}

	recordRun(cfg, len(nets), len(txs), imbalance)
	return nil
}

// recordRun appends the run to the audit trail. Failures are not fatal:
// the payment list already printed.
func recordRun(cfg daemon.Config, players, txCount int, imbalance float64) {
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return
	}
	defer db.Close()
	if imbalance < 0 {
		imbalance = -imbalance
	}
	db.InsertSettlementRun("cli", players, txCount, imbalance)
}

// readLedgerCSV parses an export file. Column order is taken from the
// header row; unknown columns are ignored and malformed amounts become 0.
func readLedgerCSV(path string) ([]domain.LedgerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, nil
	}

	col := make(map[string]int)
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nickIdx, ok := col["player_nickname"]
	if !ok {
		return nil, fmt.Errorf("%s has no player_nickname column", path)
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []domain.LedgerRow
	for _, rec := range records[1:] {
		if nickIdx >= len(rec) {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			PlayerNickname: rec[nickIdx],
			BuyIn:          domain.Amount(domain.ParseAmount(field(rec, "buy_in"))),
			BuyOut:         domain.Amount(domain.ParseAmount(field(rec, "buy_out"))),
			Stack:          domain.Amount(domain.ParseAmount(field(rec, "stack"))),
		})
	}
	return rows, nil
}
