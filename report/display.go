package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frittesauce/Eclipse/common"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
	NoteColorFG    = pterm.FgCyan
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

func (d *Diagnostic) display() {
	d.displayBanner()
	fmt.Println(d.Message)

	if d.Span != nil {
		displayCodeSelection(d.File, d.Span, d.IsError)
	}

	for _, sec := range d.Secondary {
		NoteColorFG.Print(sec.Message)
		fmt.Println(" (" + sec.Span.String() + ")")

		if sec.Span != nil {
			displayCodeSelection(d.File, sec.Span, false)
		}
	}

	if d.Note != "" {
		NoteColorFG.Print("note: ")
		fmt.Println(d.Note)
	}
}

// displayBanner displays the banner on top of all diagnostics
func (d *Diagnostic) displayBanner() {
	fmt.Print("\n\n-- ")
	kindStr := d.Kind.String()
	kindLen := len(kindStr)
	if d.IsError {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 7
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 9
	}

	fmt.Print(" ")

	fileName := filepath.Base(d.File) + ":" + d.Span.String()
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the selected code (with line numbers) and
// highlights the span.  Nothing is displayed if the source file is not
// available.
func displayCodeSelection(file string, span *TextSpan, isError bool) {
	f, err := os.Open(file)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	lines := make([]string, span.EndLine-span.StartLine+1)
	for lineNumber := 1; sc.Scan(); lineNumber++ {
		if lineNumber >= span.StartLine && lineNumber <= span.EndLine {
			lines[lineNumber-span.StartLine] = strings.ReplaceAll(sc.Text(), "\t", "    ")
		}
	}

	// calculate whitespace to trim
	minWhitespace := -1
	for _, line := range lines {
		leadingWhitespace := len(line) - len(strings.TrimLeft(line, " "))

		if minWhitespace == -1 || minWhitespace > leadingWhitespace {
			minWhitespace = leadingWhitespace
		}
	}

	caretColor := WarnColorFG
	if isError {
		caretColor = ErrorColorFG
	}

	maxLineNumberWidth := len(strconv.Itoa(span.EndLine)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+span.StartLine))
		fmt.Print("|  ")
		fmt.Println(line[minWhitespace:])

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")

		startCol, endCol := minWhitespace, len(line)
		if i == 0 {
			startCol = clamp(span.StartCol, minWhitespace, len(line))
		}

		if i == len(lines)-1 {
			endCol = clamp(span.EndCol, startCol, len(line))
		}

		fmt.Print(strings.Repeat(" ", startCol-minWhitespace))
		caretColor.Println(strings.Repeat("^", maxInt(endCol-startCol, 1)))
	}
	fmt.Println()
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	} else if n > hi {
		return hi
	}

	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// -----------------------------------------------------------------------------

// DisplayCompileHeader displays all the compiler information before starting
// compilation.
func (r *Reporter) DisplayCompileHeader(target string) {
	if r.logLevel < LogLevelVerbose {
		return
	}

	fmt.Print("eclipse ")
	InfoColorFG.Print("v" + common.EclipseVersion)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// BeginPhase displays the beginning of a compilation phase.
func (r *Reporter) BeginPhase(phase string) {
	if r.logLevel < LogLevelVerbose {
		return
	}

	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// EndPhase displays the end of the current compilation phase.
func (r *Reporter) EndPhase(success bool) {
	displayEndPhase(success)
}

func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// DisplayCompilationFinished displays a compilation finished message.
func (r *Reporter) DisplayCompilationFinished() {
	if r.logLevel == LogLevelSilent {
		return
	}

	errorCount, warningCount := r.ErrorCount(), r.WarningCount()

	fmt.Print("\n")

	if errorCount == 0 {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
