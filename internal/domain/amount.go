package domain

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const DefaultCommandPrefix = "add"

type ParsedCommand struct {
	Recognized bool
	Amount     int64
}

type unitSuffix struct {
	suffix     string
	multiplier int64
}

var unitSuffixes = []unitSuffix{
	{suffix: "rb", multiplier: 1_000},
	{suffix: "jt", multiplier: 1_000_000},
	{suffix: "k", multiplier: 1_000},
	{suffix: "m", multiplier: 1_000_000},
}

var (
	maxAmount        = decimal.NewFromInt(math.MaxInt64)
	plainNumber      = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?(e[+-]?[0-9]{1,2})?$`)
	groupedThousands = regexp.MustCompile(`^-?[0-9]{1,3}(\.[0-9]{3})+$`)
)

type AmountParser struct {
	command *regexp.Regexp
}

func NewAmountParser(prefix string) *AmountParser {
	prefix = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(prefix), "."))
	if prefix == "" {
		prefix = DefaultCommandPrefix
	}

	return &AmountParser{
		command: regexp.MustCompile(`(?is)^\.?` + regexp.QuoteMeta(prefix) + `\s+(.+)$`),
	}
}

var defaultAmountParser = NewAmountParser(DefaultCommandPrefix)

func ParseAmount(text string) ParsedCommand {
	return defaultAmountParser.Parse(text)
}

// Parse recognizes "<prefix> <amount>" messages. Anything it cannot read as a
// number yields an unrecognized command rather than an error.
func (p *AmountParser) Parse(text string) ParsedCommand {
	match := p.command.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return ParsedCommand{}
	}

	amount, ok := parseAmountToken(match[1])
	if !ok {
		return ParsedCommand{}
	}

	return ParsedCommand{Recognized: true, Amount: amount}
}

func parseAmountToken(raw string) (int64, bool) {
	token := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)
	token = strings.TrimRight(token, ".")
	if rest, ok := strings.CutPrefix(token, "+"); ok {
		if strings.HasPrefix(rest, "-") {
			return 0, false
		}
		token = rest
	}

	multiplier := int64(1)
	for _, unit := range unitSuffixes {
		if strings.HasSuffix(token, unit.suffix) {
			token = strings.TrimSuffix(token, unit.suffix)
			multiplier = unit.multiplier
			break
		}
	}

	number, ok := normalizeSeparators(token)
	if !ok {
		return 0, false
	}

	value, err := decimal.NewFromString(number)
	if err != nil {
		return 0, false
	}

	value = value.Mul(decimal.NewFromInt(multiplier)).Round(0)
	if value.Abs().GreaterThan(maxAmount) {
		return 0, false
	}

	return value.IntPart(), true
}

// normalizeSeparators maps the Indonesian number forms onto a plain decimal
// string. A comma is always the decimal mark and then every period groups
// thousands. Without a comma, periods group thousands only when they form a
// valid grouping such as "1.500.000"; a single other period is a decimal mark.
func normalizeSeparators(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	if strings.Contains(token, ",") {
		token = strings.ReplaceAll(token, ".", "")
		if strings.Count(token, ",") > 1 {
			return "", false
		}
		token = strings.Replace(token, ",", ".", 1)
	} else if groupedThousands.MatchString(token) {
		token = strings.ReplaceAll(token, ".", "")
	}

	if strings.HasPrefix(token, ".") {
		token = "0" + token
	} else if strings.HasPrefix(token, "-.") {
		token = "-0" + token[1:]
	}
	token = strings.TrimSuffix(token, ".")

	if !plainNumber.MatchString(token) {
		return "", false
	}

	return token, true
}
