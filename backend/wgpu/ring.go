// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformRing is a uniform buffer split into aligned slots, each bound
// through its own lazily created bind group. A ring that runs out of
// slots within a frame grows; the outgrown buffer stays alive until the
// next rewind because earlier draws of the pass still read it.
type uniformRing struct {
	dev    *Device
	label  string
	layout hal.BindGroupLayout
	buffer hal.Buffer
	groups []hal.BindGroup

	retired []ringBuffer

	size   int
	stride int
	slots  int
	cursor int
}

type ringBuffer struct {
	buffer hal.Buffer
	groups []hal.BindGroup
}

func (r *uniformRing) init(dev *Device, label string, layout hal.BindGroupLayout, size int) error {
	r.dev, r.label, r.layout = dev, label, layout
	r.size = size
	r.stride = alignUp(size, uniformAlign)
	return r.allocate(dev.ringSlots)
}

func (r *uniformRing) allocate(slots int) error {
	buf, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label + "_uniform_ring",
		Size:  uint64(r.stride * slots),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform ring: %w", err)
	}
	r.buffer = buf
	r.groups = make([]hal.BindGroup, slots)
	r.slots = slots
	r.cursor = 0
	return nil
}

// next returns the next free slot. grown is set when the ring had to be
// doubled to provide it.
func (r *uniformRing) next() (slot int, grown bool, err error) {
	if r.cursor == r.slots {
		old := ringBuffer{buffer: r.buffer, groups: r.groups}
		if err := r.allocate(r.slots * 2); err != nil {
			return 0, false, err
		}
		r.retired = append(r.retired, old)
		grown = true
	}
	slot = r.cursor
	r.cursor++
	return slot, grown, nil
}

// rewind starts a new frame and destroys buffers outgrown in the last one.
func (r *uniformRing) rewind() {
	for _, rb := range r.retired {
		r.destroy(rb)
	}
	r.retired = r.retired[:0]
	r.cursor = 0
}

func (r *uniformRing) offset(slot int) uint64 { return uint64(slot * r.stride) }

func (r *uniformRing) group(slot int) (hal.BindGroup, error) {
	if g := r.groups[slot]; g != nil {
		return g, nil
	}
	g, err := r.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.label + "_uniforms",
		Layout: r.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.buffer.NativeHandle(), Offset: r.offset(slot), Size: uint64(r.size),
			}},
		},
	})
	if err != nil {
		return nil, err
	}
	r.groups[slot] = g
	return g, nil
}

func (r *uniformRing) destroy(rb ringBuffer) {
	for _, g := range rb.groups {
		if g != nil {
			r.dev.device.DestroyBindGroup(g)
		}
	}
	if rb.buffer != nil {
		r.dev.device.DestroyBuffer(rb.buffer)
	}
}

func (r *uniformRing) release() {
	if r.dev == nil {
		return
	}
	r.rewind()
	r.destroy(ringBuffer{buffer: r.buffer, groups: r.groups})
	r.buffer, r.groups = nil, nil
}
