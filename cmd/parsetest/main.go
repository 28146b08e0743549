// Command parsetest parses transcripts from the command line or stdin and
// prints the resulting records. Handy for tuning the extraction rules
// without running the server.
package main

import (
	"bufio"
	"fmt"
	"os"

	"gagyebu/internal/core"
	"gagyebu/internal/parser"
)

func main() {
	p := parser.New()

	if len(os.Args) > 1 {
		for _, transcript := range os.Args[1:] {
			printRecords(transcript, p.Parse(transcript))
		}
		return
	}

	fmt.Println("한 줄에 하나씩 음성 인식 결과를 입력하세요 (Ctrl+D로 종료):")
	scanner := bufio.NewScanner(os.Stdin)
	var all []core.ExpenseRecord
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		records := p.Parse(line)
		printRecords(line, records)
		all = append(all, records...)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}

	if len(all) > 0 {
		printSummary(all)
	}
}

func printRecords(transcript string, records []core.ExpenseRecord) {
	fmt.Printf("입력: %q\n", transcript)
	if len(records) == 0 {
		fmt.Println("  (기록 없음)")
		return
	}
	for _, r := range records {
		fmt.Printf("  %s | %s | %s | %s | %s x%d = %s | %s\n",
			r.Date, r.Store, r.Category, r.Item,
			core.FormatWon(r.UnitPrice), r.Quantity, core.FormatWon(r.Amount),
			r.Payment)
		if r.Memo != "" {
			fmt.Printf("    메모: %s\n", r.Memo)
		}
	}
}

func printSummary(records []core.ExpenseRecord) {
	sum := core.Summarize(records, core.Today())
	fmt.Printf("\n합계: %d건 %s\n", sum.Count, core.FormatWon(sum.TotalAmount))
	for _, c := range sum.ByCategory {
		fmt.Printf("  %s: %s\n", c.Label, core.FormatWon(c.Amount))
	}
}
