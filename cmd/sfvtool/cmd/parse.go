package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/sfv-go/sfv"
)

var (
	parseMode string
	parseFile string
)

var parseCmd = &cobra.Command{
	Use:   "parse [value]",
	Short: "parse a single structured field value and print its elements",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseMode, "mode", "m", "item", "top-level shape to parse: item, list, or dict")
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "read the value from this file instead of the argument or stdin")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args, parseFile)
	if err != nil {
		return err
	}

	p := sfv.NewParser(raw)

	switch parseMode {
	case "item":
		v, err := p.Item()
		if err != nil {
			log.WithField("pos", p.Pos()).Error(err)
			return err
		}
		if err := printElement(p, v, ""); err != nil {
			return err
		}
		if err := walkParams(p, "  "); err != nil {
			return err
		}
		// The second Item call enforces that only trailing SP remains
		// after the value and its parameters.
		if _, err := p.Item(); err != nil && !errors.Is(err, sfv.ErrEOF) {
			log.WithField("pos", p.Pos()).Error(err)
			return err
		}
		return nil
	case "list":
		for {
			v, err := p.List()
			if errors.Is(err, sfv.ErrEOF) {
				return nil
			}
			if err != nil {
				log.WithField("pos", p.Pos()).Error(err)
				return err
			}
			if err := printElement(p, v, "- "); err != nil {
				return err
			}
			if err := walkParams(p, "  "); err != nil {
				return err
			}
		}
	case "dict":
		for {
			key, v, err := p.Dict()
			if errors.Is(err, sfv.ErrEOF) {
				return nil
			}
			if err != nil {
				log.WithField("pos", p.Pos()).Error(err)
				return err
			}
			if err := printElement(p, v, key.String()+" = "); err != nil {
				return err
			}
			if err := walkParams(p, "  "); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown --mode %q (want item, list, or dict)", parseMode)
	}
}

// printElement prints v with the given line prefix, descending into its
// inner list if v is an inner-list marker.
func printElement(p *sfv.Parser, v sfv.Value, prefix string) error {
	if debug {
		repr.Println(v)
	} else {
		fmt.Printf("%s%s\n", prefix, v.String())
	}
	if v.IsInnerList() {
		return walkInnerList(p, "    ")
	}
	return nil
}

// walkParams prints the trailing parameter list of the element the
// parser just produced, leaving it positioned for the next top-level
// call.
func walkParams(p *sfv.Parser, indent string) error {
	for {
		key, v, err := p.Param()
		if errors.Is(err, sfv.ErrEOF) {
			return nil
		}
		if err != nil {
			log.WithField("pos", p.Pos()).Error(err)
			return err
		}
		if debug {
			repr.Println(key, v)
			continue
		}
		fmt.Printf("%s;%s = %s\n", indent, key.String(), v.String())
	}
}

func walkInnerList(p *sfv.Parser, indent string) error {
	for {
		v, err := p.InnerList()
		if errors.Is(err, sfv.ErrEOF) {
			return nil
		}
		if err != nil {
			log.WithField("pos", p.Pos()).Error(err)
			return err
		}
		if debug {
			repr.Println(v)
		} else {
			fmt.Printf("%s%s\n", indent, v.String())
		}
		if err := walkParams(p, indent+"  "); err != nil {
			return err
		}
	}
}

// readInput resolves the value to parse: the positional argument takes
// priority, then -f FILE, then stdin if neither is given.
func readInput(args []string, file string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	if file != "" {
		return os.ReadFile(file)
	}
	return io.ReadAll(os.Stdin)
}
