// Package codec implements the delimited text wire format exchanged between validators.
package codec

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

// ErrMalformed is returned for any input that does not follow the wire format.
var ErrMalformed = errors.New("malformed encoding")

const (
	fieldSep  = ":"
	recordSep = "|"
	listSep   = ","
	pairSep   = "="
)

// EncodeOperation renders op as a single delimited record.
func EncodeOperation(op model.Operation) string {
	ts := encodeTime(op.Timestamp)
	switch p := op.Payload.(type) {
	case model.Registration:
		return join(string(model.KindRegistration), ts, esc(p.VehicleID), esc(p.PublicKey), formatFloat(p.InitialReputation))
	case model.EventDecision:
		return join(string(model.KindEventDecision), ts, esc(p.EventID), esc(string(p.Verdict)), esc(p.WinningClaim),
			formatFloat(p.Confidence), esc(p.Location.String()), encodeTime(p.OccurredAt), encodeVotes(p.Reports))
	case model.ReputationUpdate:
		return join(string(model.KindReputationUpdate), ts, esc(p.VehicleID), esc(p.EventID),
			formatFloat(p.OldReputation), formatFloat(p.NewReputation), formatBool(p.Correct))
	default:
		return ""
	}
}

// DecodeOperation parses a record produced by EncodeOperation.
func DecodeOperation(record string) (model.Operation, error) {
	fields := strings.Split(record, fieldSep)
	if len(fields) < 2 {
		return model.Operation{}, fmt.Errorf("%w: operation record %q", ErrMalformed, record)
	}
	ts, err := decodeTime(fields[1])
	if err != nil {
		return model.Operation{}, err
	}

	d := &decoder{fields: fields[2:]}
	var payload model.Payload
	switch model.OperationKind(fields[0]) {
	case model.KindRegistration:
		d.expect(3)
		payload = model.Registration{
			VehicleID:         d.str(),
			PublicKey:         d.str(),
			InitialReputation: d.float(),
		}
	case model.KindEventDecision:
		d.expect(7)
		payload = model.EventDecision{
			EventID:      d.str(),
			Verdict:      model.Verdict(d.str()),
			WinningClaim: d.str(),
			Confidence:   d.float(),
			Location:     d.location(),
			OccurredAt:   d.timestamp(),
			Reports:      d.votes(),
		}
	case model.KindReputationUpdate:
		d.expect(5)
		payload = model.ReputationUpdate{
			VehicleID:     d.str(),
			EventID:       d.str(),
			OldReputation: d.float(),
			NewReputation: d.float(),
			Correct:       d.flag(),
		}
	default:
		return model.Operation{}, fmt.Errorf("%w: unknown operation kind %q", ErrMalformed, fields[0])
	}
	if d.err != nil {
		return model.Operation{}, fmt.Errorf("%s record: %w", fields[0], d.err)
	}
	return model.NewOperation(ts, payload), nil
}

// decoder walks positional fields and keeps the first error.
type decoder struct {
	fields []string
	pos    int
	err    error
}

func (d *decoder) expect(n int) {
	if d.err == nil && len(d.fields) != n {
		d.err = fmt.Errorf("%w: want %d fields, got %d", ErrMalformed, n, len(d.fields))
	}
}

func (d *decoder) next() (string, bool) {
	if d.err != nil || d.pos >= len(d.fields) {
		return "", false
	}
	f := d.fields[d.pos]
	d.pos++
	return f, true
}

func (d *decoder) str() string {
	f, ok := d.next()
	if !ok {
		return ""
	}
	s, err := url.QueryUnescape(f)
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return s
}

func (d *decoder) float() float64 {
	f, ok := d.next()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v
}

func (d *decoder) flag() bool {
	f, ok := d.next()
	if !ok {
		return false
	}
	switch f {
	case "1":
		return true
	case "0":
		return false
	default:
		d.err = fmt.Errorf("%w: flag %q", ErrMalformed, f)
		return false
	}
}

func (d *decoder) timestamp() time.Time {
	f, ok := d.next()
	if !ok {
		return time.Time{}
	}
	t, err := decodeTime(f)
	if err != nil {
		d.err = err
	}
	return t
}

func (d *decoder) location() model.Location {
	s := d.str()
	if d.err != nil {
		return model.Location{}
	}
	loc, err := model.ParseLocation(s)
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return loc
}

func (d *decoder) votes() []model.ReportVote {
	f, ok := d.next()
	if !ok || f == "" {
		return nil
	}
	parts := strings.Split(f, listSep)
	votes := make([]model.ReportVote, 0, len(parts))
	for _, part := range parts {
		id, claim, found := strings.Cut(part, pairSep)
		if !found {
			d.err = fmt.Errorf("%w: report vote %q", ErrMalformed, part)
			return nil
		}
		reporter, err := url.QueryUnescape(id)
		if err != nil {
			d.err = fmt.Errorf("%w: %v", ErrMalformed, err)
			return nil
		}
		c, err := url.QueryUnescape(claim)
		if err != nil {
			d.err = fmt.Errorf("%w: %v", ErrMalformed, err)
			return nil
		}
		votes = append(votes, model.ReportVote{ReporterID: reporter, Claim: c})
	}
	return votes
}

func encodeVotes(votes []model.ReportVote) string {
	parts := make([]string, 0, len(votes))
	for _, v := range votes {
		parts = append(parts, esc(v.ReporterID)+pairSep+esc(v.Claim))
	}
	return strings.Join(parts, listSep)
}

func join(fields ...string) string {
	return strings.Join(fields, fieldSep)
}

func esc(s string) string {
	return url.QueryEscape(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Zero times are encoded as an empty field; UnixNano is undefined for them.
func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrMalformed, s)
	}
	return time.Unix(0, n).UTC(), nil
}
