package script

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// Script errors.
var (
	ErrSyntax           = errors.New("script: syntax error")
	ErrUnknownStatement = errors.New("script: unknown statement")
	ErrUnexpectedClose  = errors.New("script: '}' without an open value")
	ErrUnclosed         = errors.New("script: constructed value not closed")
	ErrTagNotAllowed    = errors.New("script: statement does not accept a tag")
	ErrEmptyReader      = errors.New("script: nil reader")
)

// container kinds, recorded so "}" calls the matching pop.
type containerKind int

const (
	kindSequence containerKind = iota
	kindSet
	kindOctets
	kindExplicit
)

type openValue struct {
	kind   containerKind
	tag    ber.Tag
	tagged bool
	line   int
}

// Runner feeds script statements to a ber.Writer.
type Runner struct {
	w     *ber.Writer
	stack []openValue
	line  int
}

// NewRunner returns a Runner writing to w.
func NewRunner(w *ber.Writer) *Runner {
	return &Runner{w: w}
}

// Run reads every statement from r, then checks that all constructed
// values were closed.
func Run(w *ber.Writer, r io.Reader) error {
	return NewRunner(w).Run(r)
}

// Run executes the statements read from r.
func (s *Runner) Run(r io.Reader) error {
	if r == nil {
		return ErrEmptyReader
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		s.line++
		if err := s.Exec(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "script: read")
	}

	if n := len(s.stack); n > 0 {
		return errors.Wrapf(ErrUnclosed, "opened on line %d", s.stack[n-1].line)
	}
	return nil
}

// Depth returns the number of constructed values still open.
func (s *Runner) Depth() int {
	return len(s.stack)
}

// Exec executes a single statement.
func (s *Runner) Exec(line string) error {
	if err := s.exec(strings.TrimSpace(line)); err != nil {
		if s.line > 0 {
			return errors.Wrapf(err, "line %d", s.line)
		}
		return err
	}
	return nil
}

func (s *Runner) exec(line string) error {
	if line == "" || line[0] == '#' {
		return nil
	}
	if line == "}" {
		return s.close()
	}

	var tag ber.Tag
	tagged := false
	if line[0] == '[' {
		end := strings.IndexByte(line, ']')
		if end == -1 {
			return errors.Wrap(ErrSyntax, "unterminated tag")
		}
		var err error
		if tag, err = parseTag(line[1:end]); err != nil {
			return err
		}
		tagged = true
		line = strings.TrimSpace(line[end+1:])
	}

	if strings.HasSuffix(line, "{") {
		keyword, rest := splitStatement(strings.TrimSpace(strings.TrimSuffix(line, "{")))
		return s.open(keyword, rest, tag, tagged)
	}
	keyword, arg := splitStatement(line)
	return s.write(keyword, arg, tag, tagged)
}

func splitStatement(line string) (keyword, arg string) {
	if idx := strings.IndexAny(line, " \t"); idx != -1 {
		return strings.ToLower(line[:idx]), strings.TrimSpace(line[idx+1:])
	}
	return strings.ToLower(line), ""
}

// parseTag parses "N" (context-specific) or "CLASS N".
func parseTag(s string) (ber.Tag, error) {
	fields := strings.Fields(s)
	class := ber.ClassContextSpecific
	switch len(fields) {
	case 1:
	case 2:
		switch strings.ToUpper(fields[0]) {
		case "UNIVERSAL":
			class = ber.ClassUniversal
		case "APPLICATION", "APP":
			class = ber.ClassApplication
		case "CONTEXT":
		case "PRIVATE":
			class = ber.ClassPrivate
		default:
			return ber.Tag{}, errors.Wrapf(ErrSyntax, "unknown tag class %q", fields[0])
		}
		fields = fields[1:]
	default:
		return ber.Tag{}, errors.Wrapf(ErrSyntax, "bad tag %q", s)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return ber.Tag{}, errors.Wrapf(ErrSyntax, "bad tag number %q", fields[0])
	}
	return ber.NewTag(class, n), nil
}

func (s *Runner) open(keyword, rest string, tag ber.Tag, tagged bool) error {
	if rest != "" {
		return errors.Wrapf(ErrSyntax, "unexpected %q before '{'", rest)
	}

	var kind containerKind
	var err error
	switch keyword {
	case "sequence", "seq":
		kind = kindSequence
		if tagged {
			err = s.w.PushSequenceTag(tag)
		} else {
			err = s.w.PushSequence()
		}
	case "set":
		kind = kindSet
		if tagged {
			err = s.w.PushSetOfTag(tag)
		} else {
			err = s.w.PushSetOf()
		}
	case "octets":
		kind = kindOctets
		if tagged {
			err = s.w.PushOctetStringTag(tag)
		} else {
			err = s.w.PushOctetString()
		}
	case "explicit", "":
		if !tagged {
			return errors.Wrap(ErrSyntax, "explicit needs a tag")
		}
		kind = kindExplicit
		err = s.w.PushExplicit(tag)
	default:
		return errors.Wrapf(ErrUnknownStatement, "%q", keyword)
	}
	if err != nil {
		return err
	}

	s.stack = append(s.stack, openValue{kind: kind, tag: tag, tagged: tagged, line: s.line})
	return nil
}

func (s *Runner) close() error {
	if len(s.stack) == 0 {
		return ErrUnexpectedClose
	}
	top := s.stack[len(s.stack)-1]

	var err error
	switch top.kind {
	case kindSequence:
		if top.tagged {
			err = s.w.PopSequenceTag(top.tag)
		} else {
			err = s.w.PopSequence()
		}
	case kindSet:
		if top.tagged {
			err = s.w.PopSetOfTag(top.tag)
		} else {
			err = s.w.PopSetOf()
		}
	case kindOctets:
		if top.tagged {
			err = s.w.PopOctetStringTag(top.tag)
		} else {
			err = s.w.PopOctetString()
		}
	case kindExplicit:
		err = s.w.PopExplicit(top.tag)
	}
	if err != nil {
		return err
	}

	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

func (s *Runner) write(keyword, arg string, tag ber.Tag, tagged bool) error {
	w := s.w
	switch keyword {
	case "boolean", "bool":
		v, err := strconv.ParseBool(arg)
		if err != nil {
			return errors.Wrapf(ErrSyntax, "boolean %q", arg)
		}
		if tagged {
			return w.WriteBooleanTag(tag, v)
		}
		return w.WriteBoolean(v)

	case "null":
		if arg != "" {
			return errors.Wrap(ErrSyntax, "null takes no value")
		}
		if tagged {
			return w.WriteNullTag(tag)
		}
		return w.WriteNull()

	case "integer", "int":
		n, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return errors.Wrapf(ErrSyntax, "integer %q", arg)
		}
		if !tagged {
			tag = ber.UniversalTag(ber.TagInteger)
		}
		if n.IsInt64() {
			return w.WriteIntegerTag(tag, n.Int64())
		}
		return w.WriteBigIntTag(tag, n)

	case "enumerated", "enum":
		n, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return errors.Wrapf(ErrSyntax, "enumerated %q", arg)
		}
		if tagged {
			return w.WriteEnumeratedTag(tag, n)
		}
		return w.WriteEnumerated(n)

	case "octets":
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		if tagged {
			return w.WriteOctetStringTag(tag, v)
		}
		return w.WriteOctetString(v)

	case "bits":
		v, unused, err := parseBits(arg)
		if err != nil {
			return err
		}
		if tagged {
			return w.WriteBitStringTag(tag, v, unused)
		}
		return w.WriteBitString(v, unused)

	case "oid":
		oid, err := parseOID(arg)
		if err != nil {
			return err
		}
		if tagged {
			return w.WriteObjectIdentifierTag(tag, oid)
		}
		return w.WriteObjectIdentifier(oid)

	case "utf8":
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		if tagged {
			return w.WriteUTF8StringTag(tag, string(v))
		}
		return w.WriteUTF8String(string(v))

	case "raw":
		v, err := hex.DecodeString(strings.Join(strings.Fields(arg), ""))
		if err != nil {
			return errors.Wrapf(ErrSyntax, "raw hex: %v", err)
		}
		if tagged {
			return w.WritePrimitive(tag, v)
		}
		return w.WriteEncodedValue(v)
	}

	if tagged {
		return errors.Wrapf(ErrTagNotAllowed, "%q", keyword)
	}

	switch keyword {
	case "printable":
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		return w.WritePrintableString(string(v))
	case "ia5":
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		return w.WriteIA5String(string(v))
	case "utctime", "gentime":
		t, err := time.Parse(time.RFC3339, arg)
		if err != nil {
			return errors.Wrapf(ErrSyntax, "time %q", arg)
		}
		if keyword == "utctime" {
			return w.WriteUTCTime(t)
		}
		return w.WriteGeneralizedTime(t)
	}
	return errors.Wrapf(ErrUnknownStatement, "%q", keyword)
}

// parseValue decodes a string operand. ":: " introduces base64 as in LDIF,
// "0x" hex, and a leading double quote a Go-quoted string. Anything else
// is taken literally.
func parseValue(arg string) ([]byte, error) {
	switch {
	case strings.HasPrefix(arg, "::"):
		v, err := base64.StdEncoding.DecodeString(strings.TrimSpace(arg[2:]))
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "base64: %v", err)
		}
		return v, nil
	case strings.HasPrefix(arg, "0x"):
		v, err := hex.DecodeString(arg[2:])
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "hex: %v", err)
		}
		return v, nil
	case strings.HasPrefix(arg, `"`):
		v, err := strconv.Unquote(arg)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "quoted string %s", arg)
		}
		return []byte(v), nil
	}
	return []byte(arg), nil
}

// parseBits parses "HEX [UNUSED]".
func parseBits(arg string) ([]byte, int, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, 0, errors.Wrap(ErrSyntax, "bits needs a hex value and optional unused bit count")
	}
	v, err := hex.DecodeString(strings.TrimPrefix(fields[0], "0x"))
	if err != nil {
		return nil, 0, errors.Wrapf(ErrSyntax, "bits: %v", err)
	}
	unused := 0
	if len(fields) == 2 {
		if unused, err = strconv.Atoi(fields[1]); err != nil {
			return nil, 0, errors.Wrapf(ErrSyntax, "unused bits %q", fields[1])
		}
	}
	return v, unused, nil
}

func parseOID(arg string) ([]int, error) {
	parts := strings.Split(arg, ".")
	oid := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrSyntax, "oid %q", arg)
		}
		oid[i] = n
	}
	return oid, nil
}
