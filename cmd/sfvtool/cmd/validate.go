package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sfv-go/sfv"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "validate a file of header-name: value lines against their structured field value shape",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var totalBytes uint64
	failures := 0
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		header, value, ok := strings.Cut(line, ":")
		if !ok {
			failures++
			log.WithField("line", lineNo).Error("missing ':' separator")
			fmt.Printf("%d: FAIL (missing ':' separator)\n", lineNo)
			continue
		}
		header = strings.TrimSpace(header)
		value = strings.TrimSpace(value)
		totalBytes += uint64(len(value))

		if err := validateValue(cfg.modeFor(header), value); err != nil {
			failures++
			log.WithFields(map[string]any{"line": lineNo, "header": header}).Error(err)
			fmt.Printf("%d: FAIL %s (%v)\n", lineNo, header, err)
			continue
		}
		fmt.Printf("%d: ok %s\n", lineNo, header)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("%d line(s), %d failure(s), %s of value data\n", lineNo, failures, humanize.Bytes(totalBytes))
	if failures > 0 {
		return fmt.Errorf("%d line(s) failed validation", failures)
	}
	return nil
}

func validateValue(mode, value string) error {
	p := sfv.NewParser([]byte(value))
	switch mode {
	case "item":
		if _, err := p.Item(); err != nil {
			return err
		}
		// The second Item call walks any unconsumed parameters or inner
		// list and enforces that only trailing SP remains after them.
		_, err := p.Item()
		if errors.Is(err, sfv.ErrEOF) {
			return nil
		}
		return err
	case "list":
		for {
			_, err := p.List()
			if errors.Is(err, sfv.ErrEOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := drainParams(p); err != nil {
				return err
			}
		}
	case "dict":
		for {
			_, _, err := p.Dict()
			if errors.Is(err, sfv.ErrEOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := drainParams(p); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func drainParams(p *sfv.Parser) error {
	for {
		_, _, err := p.Param()
		if errors.Is(err, sfv.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
