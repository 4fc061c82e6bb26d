// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package network

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// NATAddress is the address of the network's NAT. Packets sent to any address
// outside of the network are delivered to the NAT.
const NATAddress = 255

// Idle is the value received by a node when its input queue is empty.
const Idle vm.Cell = -1

// ErrHalted is returned by Run when every node of the network has halted.
var ErrHalted = errors.New("all nodes halted")

// Packet is a pair of values sent from one node to another.
type Packet struct {
	X, Y vm.Cell
}

type node struct {
	p       *vm.Program
	in      vm.Values
	pending []vm.Cell // output not yet forming a full (dst, x, y) triple
	halted  bool
}

// Network is a set of nodes running copies of the same program. Node n gets
// its address n as first input, then reads packets as (x, y) pairs, or Idle
// when no packet is waiting. Nodes send packets by outputting (dst, x, y)
// triples.
//
// The network is driven one tick at a time. On each tick every node is run, in
// address order, until it needs input or halts, and its output is routed
// immediately: a packet sent to a node with a higher address is received on
// the same tick.
//
// When all queues are empty at the end of a tick, the network is idle and the
// NAT sends the last packet it received to node 0.
type Network struct {
	nodes   []*node
	nat     Packet
	natSet  bool
	history []Packet
	ticks   int
}

// New returns a network of size nodes running img. The nodes are primed with
// their address but not run.
func New(img vm.Image, size int) (*Network, error) {
	if size <= 0 || size > NATAddress {
		return nil, errors.Errorf("invalid network size %d", size)
	}
	p, err := vm.New(img)
	if err != nil {
		return nil, err
	}
	n := &Network{nodes: make([]*node, size)}
	for i := range n.nodes {
		nd := &node{p: p.Clone()}
		nd.in.Push(vm.Cell(i))
		n.nodes[i] = nd
	}
	return n, nil
}

// Send queues packet pk for the node at address dst. If dst is not a node
// address, the packet goes to the NAT.
func (n *Network) Send(dst vm.Cell, pk Packet) {
	if dst < 0 || dst >= vm.Cell(len(n.nodes)) {
		n.nat, n.natSet = pk, true
		return
	}
	n.nodes[dst].in.Push(pk.X, pk.Y)
}

// NAT returns the last packet received by the NAT. ok is false if the NAT did
// not receive any packet yet.
func (n *Network) NAT() (pk Packet, ok bool) {
	return n.nat, n.natSet
}

// History returns the packets sent by the NAT to node 0, oldest first.
func (n *Network) History() []Packet {
	return n.history
}

// Ticks returns the number of ticks run so far.
func (n *Network) Ticks() int {
	return n.ticks
}

func (n *Network) idle() bool {
	for _, nd := range n.nodes {
		if !nd.halted && nd.in.Len() > 0 {
			return false
		}
	}
	return true
}

// Tick runs every node once. If the network is idle afterwards and the NAT
// holds a packet, the packet is sent to node 0 and Tick returns true.
func (n *Network) Tick() (natSent bool, err error) {
	n.ticks++
	running := 0
	for addr, nd := range n.nodes {
		if nd.halted {
			continue
		}
		if nd.in.Len() == 0 {
			nd.in.Push(Idle)
		}
		out, s, err := nd.p.Collect(&nd.in)
		if err != nil {
			return false, errors.Wrapf(err, "node %d", addr)
		}
		if s == vm.Halted {
			nd.halted = true
		} else {
			running++
		}
		nd.pending = append(nd.pending, out...)
		for len(nd.pending) >= 3 {
			n.Send(nd.pending[0], Packet{nd.pending[1], nd.pending[2]})
			nd.pending = nd.pending[3:]
		}
	}
	if running == 0 {
		return false, ErrHalted
	}
	if !n.idle() || !n.natSet {
		return false, nil
	}
	n.history = append(n.history, n.nat)
	n.nodes[0].in.Push(n.nat.X, n.nat.Y)
	return true, nil
}

// Run ticks the network until the NAT sends two packets in a row with the same
// Y value to node 0, and returns the NAT history. The context is checked
// between ticks.
func (n *Network) Run(ctx context.Context) ([]Packet, error) {
	for {
		if err := ctx.Err(); err != nil {
			return n.history, errors.Wrapf(err, "tick %d", n.ticks)
		}
		sent, err := n.Tick()
		if err != nil {
			return n.history, err
		}
		if l := len(n.history); sent && l >= 2 && n.history[l-1].Y == n.history[l-2].Y {
			return n.history, nil
		}
	}
}
