// Command csvimport is the interactive console frontend for the
// importer: it loads a delimited file and offers a small menu for
// sampling, filtering and summarizing the data.
//
// Usage:
//
//	csvimport [-delimiter ";"] [-encoding iso-8859-1] [file]
//
// When no file argument is given the path is prompted for. Leaving
// the delimiter flag unset enables automatic detection.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chira-platforms/csvimport/internal/core"
)

// cellWidth is the fixed display width of a sample table column.
const cellWidth = 15

func main() {
	delimFlag := flag.String("delimiter", "", "field delimiter (single character; default: auto-detect)")
	encFlag := flag.String("encoding", "utf-8", "file encoding by IANA name")
	flag.Parse()

	in := bufio.NewScanner(os.Stdin)

	path := flag.Arg(0)
	if path == "" {
		path = prompt(in, "Enter CSV filename to import: ")
	}

	opts := core.Options{Encoding: *encFlag}
	if *delimFlag != "" {
		d, size := utf8.DecodeRuneInString(*delimFlag)
		if size != len(*delimFlag) {
			fmt.Fprintln(os.Stderr, "Error: delimiter must be a single character.")
			os.Exit(2)
		}
		opts.Delimiter = d
	}

	imp := core.NewImporter()
	rep, err := imp.Load(path, opts)
	if err != nil {
		printError(err)
		fmt.Println("Import failed.")
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d rows from '%s'\n", rep.RowCount, rep.SourcePath)
	fmt.Printf("Columns: %s\n", strings.Join(imp.Headers(), ", "))
	fmt.Println("\nImport successful!")
	printSample(imp, core.DefaultSampleRows)

	runMenu(imp, in)
}

// runMenu loops the interactive options until the user exits. Every
// failure is reported as a message and the menu is shown again;
// nothing here terminates the loop except the exit choice.
func runMenu(imp *core.Importer, in *bufio.Scanner) {
	for {
		fmt.Println("\nOptions:")
		fmt.Println("1. Display sample data")
		fmt.Println("2. Show summary")
		fmt.Println("3. Filter data")
		fmt.Println("4. Export summary to file")
		fmt.Println("5. Exit")

		switch prompt(in, "\nSelect an option (1-5): ") {
		case "1":
			n := core.DefaultSampleRows
			if raw := prompt(in, "Number of rows to display (default 5): "); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
					n = parsed
				}
			}
			printSample(imp, n)

		case "2":
			sum, err := imp.Summarize()
			if err != nil {
				printError(err)
				continue
			}
			if _, err := sum.WriteTo(os.Stdout); err != nil {
				printError(err)
			}

		case "3":
			fmt.Printf("Available columns: %s\n", strings.Join(imp.Headers(), ", "))
			column := prompt(in, "Enter column name to filter by: ")
			value := prompt(in, "Enter value to filter for: ")

			rows, err := imp.Filter(column, value)
			if err != nil {
				printError(err)
				continue
			}
			fmt.Printf("Found %d rows where %s = '%s'\n", len(rows), column, value)
			printFiltered(imp.Headers(), rows, 3)

		case "4":
			out := prompt(in, "Enter output filename (or press Enter for console): ")
			if out == "" {
				sum, err := imp.Summarize()
				if err != nil {
					printError(err)
					continue
				}
				if _, err := sum.WriteTo(os.Stdout); err != nil {
					printError(err)
				}
				continue
			}
			if err := imp.ExportSummary(out); err != nil {
				printError(err)
				continue
			}
			fmt.Printf("Summary exported to '%s'\n", out)

		case "5":
			fmt.Println("Goodbye!")
			return

		default:
			fmt.Println("Invalid choice. Please select 1-5.")
		}
	}
}

// printSample renders the first n rows as a fixed-width table.
func printSample(imp *core.Importer, n int) {
	res, err := imp.Sample(n)
	if err != nil {
		printError(err)
		return
	}

	fmt.Printf("\nSample data from '%s':\n", imp.SourcePath())
	fmt.Println(strings.Repeat("-", 60))

	cells := make([]string, len(res.Headers))
	for i, h := range res.Headers {
		cells[i] = pad(h)
	}
	fmt.Println(strings.Join(cells, " | "))
	fmt.Println(strings.Repeat("-", 60))

	for _, row := range res.Rows {
		for i, h := range res.Headers {
			cells[i] = pad(row[h])
		}
		fmt.Println(strings.Join(cells, " | "))
	}

	if res.Truncated {
		fmt.Printf("... and %d more rows\n", res.Omitted)
	}
}

// printFiltered shows up to limit filtered rows as "key: value" pairs.
func printFiltered(headers []string, rows []core.Row, limit int) {
	if len(rows) == 0 {
		return
	}
	if limit > len(rows) {
		limit = len(rows)
	}

	fmt.Println("\nFirst few filtered results:")
	for i, row := range rows[:limit] {
		pairs := make([]string, len(headers))
		for j, h := range headers {
			pairs[j] = fmt.Sprintf("%s: %s", h, row[h])
		}
		fmt.Printf("Row %d: %s\n", i+1, strings.Join(pairs, ", "))
	}
}

// pad clips a value to the display width and pads it to alignment.
func pad(s string) string {
	runes := []rune(s)
	if len(runes) > cellWidth {
		runes = runes[:cellWidth]
	}
	return fmt.Sprintf("%-*s", cellWidth, string(runes))
}

// prompt reads one trimmed line from the user.
func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		// EOF on stdin: behave like choosing exit.
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

// printError shows the user-facing message for any importer error.
func printError(err error) {
	msg := core.MapError(err)
	fmt.Printf("Error: %s (%s). %s.\n", msg.Message, msg.Code, msg.Action)
}
