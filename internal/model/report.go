package model

import (
	"strconv"
	"strings"
	"time"
)

// EventReport is a signed claim about a road event submitted by a vehicle.
// GroundTruthType is only used to score detection quality.
type EventReport struct {
	ReporterID      string
	ClaimedType     string
	GroundTruthType string
	Location        Location
	OccurredAt      time.Time
	Sequence        uint32
	Signature       string
	ArrivedAt       time.Time
}

// SignBytes is the canonical payload covered by the report signature.
func (r EventReport) SignBytes() []byte {
	var b strings.Builder
	b.WriteString(r.ReporterID)
	b.WriteByte(';')
	b.WriteString(r.ClaimedType)
	b.WriteByte(';')
	b.WriteString(r.Location.String())
	b.WriteByte(';')
	b.WriteString(strconv.FormatInt(r.OccurredAt.UnixNano(), 10))
	b.WriteByte(';')
	b.WriteString(strconv.FormatUint(uint64(r.Sequence), 10))
	return []byte(b.String())
}

const denialPrefix = "No "

// ClaimSubject strips a denial prefix: "No Accident" is about "Accident".
func ClaimSubject(claim string) string {
	return strings.TrimPrefix(claim, denialPrefix)
}
