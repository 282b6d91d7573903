// Copyright 2025 Medina Group
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// indexFormatVersion is bumped whenever the on-disk passage layout changes.
const indexFormatVersion = 1

// MarshalPassages serializes a passage set into the versioned binary index
// format: version, passage count, then per passage the text and its raw
// float32 vector.
func MarshalPassages(passages []core.Passage) []byte {
	size := varint.PositiveInt.Size(indexFormatVersion)
	size += varint.PositiveInt.Size(len(passages))
	for _, p := range passages {
		size += ord.String.Size(p.Text)
		size += varint.PositiveInt.Size(len(p.Vector))
		for _, f := range p.Vector {
			size += raw.Float32.Size(f)
		}
	}

	buf := make([]byte, size)
	n := varint.PositiveInt.Marshal(indexFormatVersion, buf)
	n += varint.PositiveInt.Marshal(len(passages), buf[n:])
	for _, p := range passages {
		n += ord.String.Marshal(p.Text, buf[n:])
		n += varint.PositiveInt.Marshal(len(p.Vector), buf[n:])
		for _, f := range p.Vector {
			n += raw.Float32.Marshal(f, buf[n:])
		}
	}
	return buf
}

// UnmarshalPassages deserializes a passage set from the binary index format.
func UnmarshalPassages(data []byte) ([]core.Passage, error) {
	version, n, err := varint.PositiveInt.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	if version != indexFormatVersion {
		return nil, fmt.Errorf("%w: unsupported index format version %d", ErrSerializationFailed, version)
	}

	count, m, err := varint.PositiveInt.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	n += m

	passages := make([]core.Passage, 0, count)
	for i := 0; i < count; i++ {
		text, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: passage %d text: %w", ErrTruncatedData, i, err)
		}
		n += m

		dim, m, err := varint.PositiveInt.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: passage %d vector length: %w", ErrTruncatedData, i, err)
		}
		n += m

		vector := make([]float32, dim)
		for j := 0; j < dim; j++ {
			f, m, err := raw.Float32.Unmarshal(data[n:])
			if err != nil {
				return nil, fmt.Errorf("%w: passage %d vector element %d: %w", ErrTruncatedData, i, j, err)
			}
			vector[j] = f
			n += m
		}

		passages = append(passages, core.Passage{Text: text, Vector: vector})
	}
	return passages, nil
}
