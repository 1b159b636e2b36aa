// Copyright © 2024 the gograph-align authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package testgraph

import (
	"encoding/binary"
	"errors"
	"io"
	"sort"

	"github.com/shenwei356/xopen"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

var be = binary.BigEndian

// Magic identifies the on-disk toy-graph format written by the "index"
// subcommand.
var Magic = [8]byte{'g', 'g', 'a', 't', 'g', 'r', 'p', 'h'}

// MainVersion is bumped on incompatible format changes.
var MainVersion uint8 = 0

// MinorVersion is bumped on compatible additions.
var MinorVersion uint8 = 1

// ErrInvalidFileFormat is returned when the magic number does not match.
var ErrInvalidFileFormat = errors.New("testgraph: invalid file format")

// ErrVersionMismatch is returned when MainVersion does not match.
var ErrVersionMismatch = errors.New("testgraph: version mismatch")

// WriteToFile writes the graph to file, transparently gzip-compressing when
// the name ends in ".gz" (xopen.Wopen's convention).
func (g *Graph) WriteToFile(file string) (int, error) {
	outfh, err := xopen.Wopen(file)
	if err != nil {
		return 0, err
	}
	defer outfh.Close()
	return g.Write(outfh)
}

// NewFromFile reads a graph previously written with WriteToFile.
func NewFromFile(file string) (*Graph, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh)
}

// Write serializes the graph: an 8-byte magic number, a 2-byte version
// pair, the node table (id, length, sequence), the edge table (from-id,
// to-id pairs, reconstructed via AddEdge), and the named path table.
func (g *Graph) Write(w io.Writer) (int, error) {
	var n int

	if err := binary.Write(w, be, Magic); err != nil {
		return n, err
	}
	n += len(Magic)
	if err := binary.Write(w, be, [2]uint8{MainVersion, MinorVersion}); err != nil {
		return n, err
	}
	n += 2

	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if err := binary.Write(w, be, uint64(len(ids))); err != nil {
		return n, err
	}
	n += 8
	for _, id := range ids {
		node := g.nodes[id]
		if err := binary.Write(w, be, id); err != nil {
			return n, err
		}
		n += 8
		if err := binary.Write(w, be, uint32(len(node.Seq))); err != nil {
			return n, err
		}
		n += 4
		nn, err := w.Write(node.Seq)
		if err != nil {
			return n, err
		}
		n += nn
	}

	type edgePair struct{ from, to uint64 }
	var edges []edgePair
	for from, tos := range g.outEdges {
		if !from.End {
			continue
		}
		for _, to := range tos {
			if to.End {
				continue
			}
			edges = append(edges, edgePair{from.NodeID, to.NodeID})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})
	if err := binary.Write(w, be, uint64(len(edges))); err != nil {
		return n, err
	}
	n += 8
	for _, e := range edges {
		if err := binary.Write(w, be, e.from); err != nil {
			return n, err
		}
		n += 8
		if err := binary.Write(w, be, e.to); err != nil {
			return n, err
		}
		n += 8
	}

	names := make([]string, 0, len(g.paths))
	for name := range g.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := binary.Write(w, be, uint64(len(names))); err != nil {
		return n, err
	}
	n += 8
	for _, name := range names {
		walk := g.paths[name]
		if err := binary.Write(w, be, uint32(len(name))); err != nil {
			return n, err
		}
		n += 4
		nn, err := io.WriteString(w, name)
		if err != nil {
			return n, err
		}
		n += nn
		if err := binary.Write(w, be, uint32(len(walk))); err != nil {
			return n, err
		}
		n += 4
		for _, p := range walk {
			if err := writeGraphPos(w, p, &n); err != nil {
				return n, err
			}
		}
	}

	return n, nil
}

func writeGraphPos(w io.Writer, p oracle.GraphPos, n *int) error {
	if err := binary.Write(w, be, p.NodeID); err != nil {
		return err
	}
	*n += 8
	rev := uint8(0)
	if p.IsReverse {
		rev = 1
	}
	if err := binary.Write(w, be, rev); err != nil {
		return err
	}
	*n++
	if err := binary.Write(w, be, p.Offset); err != nil {
		return err
	}
	*n += 4
	return nil
}

func readGraphPos(r io.Reader) (oracle.GraphPos, error) {
	var p oracle.GraphPos
	if err := binary.Read(r, be, &p.NodeID); err != nil {
		return p, err
	}
	var rev uint8
	if err := binary.Read(r, be, &rev); err != nil {
		return p, err
	}
	p.IsReverse = rev != 0
	if err := binary.Read(r, be, &p.Offset); err != nil {
		return p, err
	}
	return p, nil
}

// Read deserializes a graph written by Write.
func Read(r io.Reader) (*Graph, error) {
	var magic [8]byte
	if err := binary.Read(r, be, &magic); err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrInvalidFileFormat
	}
	var versions [2]uint8
	if err := binary.Read(r, be, &versions); err != nil {
		return nil, err
	}
	if versions[0] != MainVersion {
		return nil, ErrVersionMismatch
	}

	g := New()

	var numNodes uint64
	if err := binary.Read(r, be, &numNodes); err != nil {
		return nil, err
	}
	for i := uint64(0); i < numNodes; i++ {
		var id uint64
		var seqLen uint32
		if err := binary.Read(r, be, &id); err != nil {
			return nil, err
		}
		if err := binary.Read(r, be, &seqLen); err != nil {
			return nil, err
		}
		seq := make([]byte, seqLen)
		if _, err := io.ReadFull(r, seq); err != nil {
			return nil, err
		}
		g.AddNode(id, seq)
	}

	var numEdges uint64
	if err := binary.Read(r, be, &numEdges); err != nil {
		return nil, err
	}
	for i := uint64(0); i < numEdges; i++ {
		var from, to uint64
		if err := binary.Read(r, be, &from); err != nil {
			return nil, err
		}
		if err := binary.Read(r, be, &to); err != nil {
			return nil, err
		}
		g.AddEdge(from, to)
	}

	var numPaths uint64
	if err := binary.Read(r, be, &numPaths); err != nil {
		return nil, err
	}
	for i := uint64(0); i < numPaths; i++ {
		var nameLen uint32
		if err := binary.Read(r, be, &nameLen); err != nil {
			return nil, err
		}
		nameBuf := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBuf); err != nil {
			return nil, err
		}
		var walkLen uint32
		if err := binary.Read(r, be, &walkLen); err != nil {
			return nil, err
		}
		walk := make([]oracle.GraphPos, walkLen)
		for j := uint32(0); j < walkLen; j++ {
			p, err := readGraphPos(r)
			if err != nil {
				return nil, err
			}
			walk[j] = p
		}
		g.AddPath(string(nameBuf), walk)
	}

	return g, nil
}
