package minify

import (
	"regexp"
	"strings"
)

// Rule is a single rewrite step of the minification pipeline
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string

	// Comment marks the rule skipped when comments are preserved
	Comment bool

	// fn replaces each match when set; Replace is ignored
	fn func(match string) string
}

// Apply runs the rule once over the whole input, replacing every
// non-overlapping match from left to right
func (r Rule) Apply(css string) string {
	if r.fn != nil {
		return r.Pattern.ReplaceAllStringFunc(css, r.fn)
	}
	return r.Pattern.ReplaceAllString(css, r.Replace)
}

const units = `(%|em|ex|px|in|cm|mm|pt|pc)`

var (
	// Whitespace collapses every run of whitespace into one space
	Whitespace = Rule{
		Name:    "whitespace",
		Pattern: regexp.MustCompile(`[\t\n\v\f\r ]+`),
		Replace: " ",
	}

	// Comments removes /* ... */ blocks unless they start with /*!
	Comments = Rule{
		Name:    "comments",
		Pattern: regexp.MustCompile(`/\*[^!](.*?)\*/`),
		Replace: "",
		Comment: true,
	}

	// TrailingSemicolon drops the ; before a closing brace
	TrailingSemicolon = Rule{
		Name:    "trailing-semicolon",
		Pattern: regexp.MustCompile(`;(\s*\})`),
		Replace: "${1}",
	}

	// SpaceAfter removes a space after , : ; { } */ >
	SpaceAfter = Rule{
		Name:    "space-after",
		Pattern: regexp.MustCompile(`(,|:|;|\{|\}|\*/|>) `),
		Replace: "${1}",
	}

	// SpaceBefore removes a space before , ; { } ( ) >
	SpaceBefore = Rule{
		Name:    "space-before",
		Pattern: regexp.MustCompile(` (,|;|\{|\}|\(|\)|>)`),
		Replace: "${1}",
	}

	// LeadingZero turns 0.5px into .5px
	LeadingZero = Rule{
		Name:    "leading-zero",
		Pattern: regexp.MustCompile(`(?i)(:| )0\.([0-9]+)` + units),
		Replace: "${1}.${2}${3}",
	}

	// ZeroUnit turns 0px into 0
	ZeroUnit = Rule{
		Name:    "zero-unit",
		Pattern: regexp.MustCompile(`(?i)(:| )(\.?)0` + units),
		Replace: "${1}0",
	}

	// ZeroShorthand collapses the literal "0 0 0 0" into "0"
	ZeroShorthand = Rule{
		Name:    "zero-shorthand",
		Pattern: regexp.MustCompile(`0 0 0 0`),
		Replace: "0",
	}

	// HexColor shortens #aabbcc into #abc
	HexColor = Rule{
		Name:    "hex-color",
		Pattern: regexp.MustCompile(`#[0-9a-fA-F]{6}`),
		fn:      shortenHex,
	}
)

// Rules is the pipeline in the order it is applied. Rules marked Comment
// are skipped when comments are preserved.
var Rules = []Rule{
	Whitespace,
	Comments,
	TrailingSemicolon,
	SpaceAfter,
	SpaceBefore,
	LeadingZero,
	ZeroUnit,
	ZeroShorthand,
	HexColor,
}

// Minify applies every rule in order and trims the result
func Minify(css string, preserveComments bool) string {
	result := css

	for _, rule := range Rules {
		if preserveComments && rule.Comment {
			continue
		}
		result = rule.Apply(result)
	}

	return strings.Trim(result, " \t\n\r\x00\x0B")
}

// shortenHex keeps one digit per channel when both digits of every pair
// are equal, ignoring case
func shortenHex(match string) string {
	digits := match[1:]
	for i := 0; i < len(digits); i += 2 {
		if !strings.EqualFold(digits[i:i+1], digits[i+1:i+2]) {
			return match
		}
	}
	return "#" + digits[0:1] + digits[2:3] + digits[4:5]
}
