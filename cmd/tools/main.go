package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"batepapo/domain"
)

// Operator CLI: dumps the participant and message records of a running
// (or stopped) chat database as plain-text tables.
func main() {
	dbPath := flag.String("db", "/tmp/batepapo", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg: or participant:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	if strings.HasPrefix(*prefix, "participant:") {
		table.SetHeader([]string{"Name", "Last Seen"})
	} else {
		table.SetHeader([]string{"Key", "Type", "Time", "From", "To", "Text"})
	}
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				switch {
				case strings.HasPrefix(key, "participant:"):
					var p domain.Participant
					if err := json.Unmarshal(v, &p); err != nil {
						fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
						return nil
					}
					lastSeen := time.UnixMilli(p.LastSeenAt).Format(time.RFC822)
					table.Append([]string{p.Name, lastSeen})
				default:
					var m domain.Message
					if err := json.Unmarshal(v, &m); err != nil {
						fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
						return nil
					}
					table.Append([]string{shortKey(key), string(m.Type), m.Time, m.From, m.To, m.Text})
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning: ", err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the server holds the lock
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}

// shortKey keeps only the first characters of the uuid suffix for readability.
func shortKey(key string) string {
	if len(key) > 32 {
		return key[:32] + "…"
	}
	return key
}
