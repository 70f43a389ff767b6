package codec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

const (
	blockPrefix  = "BLOCK"
	proofMarker  = "PROOF"
	blockHeadLen = 7
)

// HashBlock digests the block header fields and its operation records.
// The consensus proof is not covered.
func HashBlock(b model.Block) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(b.Height, 10))
	sb.WriteByte('\n')
	sb.WriteString(encodeTime(b.Timestamp))
	sb.WriteByte('\n')
	sb.WriteString(b.PreviousHash)
	sb.WriteByte('\n')
	sb.WriteString(b.ProposerID)
	for _, op := range b.Operations {
		sb.WriteByte('\n')
		sb.WriteString(EncodeOperation(op))
	}
	return chainhash.DoubleHashH([]byte(sb.String())).String()
}

// EncodeBlock renders a block with its operations and proof.
func EncodeBlock(b model.Block) string {
	parts := make([]string, 0, blockHeadLen+len(b.Operations)+2)
	parts = append(parts,
		blockPrefix,
		strconv.FormatUint(b.Height, 10),
		encodeTime(b.Timestamp),
		esc(b.PreviousHash),
		esc(b.Hash),
		esc(b.ProposerID),
		strconv.Itoa(len(b.Operations)),
	)
	for _, op := range b.Operations {
		parts = append(parts, EncodeOperation(op))
	}
	parts = append(parts, proofMarker, encodeProof(b.Proof))
	return strings.Join(parts, recordSep)
}

// DecodeBlock parses a block. Unlike batches, a single bad record rejects the block.
func DecodeBlock(s string) (model.Block, error) {
	parts := strings.Split(s, recordSep)
	if len(parts) < blockHeadLen+2 || parts[0] != blockPrefix {
		return model.Block{}, fmt.Errorf("%w: block header", ErrMalformed)
	}

	height, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return model.Block{}, fmt.Errorf("%w: block height %q", ErrMalformed, parts[1])
	}
	ts, err := decodeTime(parts[2])
	if err != nil {
		return model.Block{}, err
	}
	d := &decoder{fields: parts[3:6]}
	b := model.Block{
		Height:       height,
		Timestamp:    ts,
		PreviousHash: d.str(),
		Hash:         d.str(),
		ProposerID:   d.str(),
	}
	if d.err != nil {
		return model.Block{}, d.err
	}

	count, err := strconv.Atoi(parts[6])
	if err != nil || count < 0 || len(parts) != blockHeadLen+count+2 {
		return model.Block{}, fmt.Errorf("%w: block operation count %q", ErrMalformed, parts[6])
	}
	if parts[blockHeadLen+count] != proofMarker {
		return model.Block{}, fmt.Errorf("%w: block proof marker", ErrMalformed)
	}

	if count > 0 {
		b.Operations = make([]model.Operation, 0, count)
	}
	for _, record := range parts[blockHeadLen : blockHeadLen+count] {
		op, err := DecodeOperation(record)
		if err != nil {
			return model.Block{}, fmt.Errorf("block operation: %w", err)
		}
		b.Operations = append(b.Operations, op)
	}

	b.Proof, err = decodeProof(parts[len(parts)-1])
	if err != nil {
		return model.Block{}, err
	}
	return b, nil
}

func encodeProof(proof []model.ValidatorSignature) string {
	parts := make([]string, 0, len(proof))
	for _, sig := range proof {
		parts = append(parts, esc(sig.ValidatorID)+pairSep+esc(sig.Signature))
	}
	return strings.Join(parts, listSep)
}

func decodeProof(s string) ([]model.ValidatorSignature, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, listSep)
	proof := make([]model.ValidatorSignature, 0, len(parts))
	for _, part := range parts {
		id, sig, ok := strings.Cut(part, pairSep)
		if !ok {
			return nil, fmt.Errorf("%w: proof entry %q", ErrMalformed, part)
		}
		validator, err := url.QueryUnescape(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		signature, err := url.QueryUnescape(sig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		proof = append(proof, model.ValidatorSignature{ValidatorID: validator, Signature: signature})
	}
	return proof, nil
}
