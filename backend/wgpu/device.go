// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrNilDevice is returned when a nil device or queue is supplied.
	ErrNilDevice = errors.New("wgpu: device or queue is nil")
)

// DefaultRingSlots is the number of uniform slots per shader, i.e. the
// number of draws one shader can issue per frame before slots are reused.
const DefaultRingSlots = 1024

// Device wraps a HAL device and queue and tracks the render pass of the
// current frame.
type Device struct {
	device hal.Device
	queue  hal.Queue

	ringSlots int
	pass      hal.RenderPassEncoder

	shader *Shader
	mesh   *Mesh

	shaders []*Shader
	stats   DeviceStats
}

// DeviceStats counts GPU work since the last BeginFrame.
type DeviceStats struct {
	Draws   int
	Dropped int
	Uploads int
	Grows   int
}

// DeviceOption configures a Device.
type DeviceOption func(*Device)

// WithRingSlots sets the number of uniform slots per shader.
func WithRingSlots(n int) DeviceOption {
	return func(d *Device) {
		if n > 0 {
			d.ringSlots = n
		}
	}
}

// NewDevice wraps an open HAL device and its queue.
func NewDevice(device hal.Device, queue hal.Queue, opts ...DeviceOption) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	d := &Device{device: device, queue: queue, ringSlots: DefaultRingSlots}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewDeviceFromProvider shares the device of a host application. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider, opts ...DeviceOption) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := any(provider).(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHAL, hp.HalQueue())
	}
	return NewDevice(device, queue, opts...)
}

// HAL returns the wrapped device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) { return d.device, d.queue }

// BeginFrame starts recording into pass and rewinds every uniform ring.
func (d *Device) BeginFrame(pass hal.RenderPassEncoder) {
	d.pass = pass
	d.shader, d.mesh = nil, nil
	d.stats = DeviceStats{}
	for _, s := range d.shaders {
		s.ring.rewind()
	}
}

// EndFrame detaches the render pass. The caller ends and submits it.
func (d *Device) EndFrame() DeviceStats {
	d.pass = nil
	d.shader, d.mesh = nil, nil
	return d.stats
}

// Stats returns the counters of the current frame.
func (d *Device) Stats() DeviceStats { return d.stats }

func (d *Device) track(s *Shader) { d.shaders = append(d.shaders, s) }

func (d *Device) untrack(s *Shader) {
	d.shaders = slices.DeleteFunc(d.shaders, func(o *Shader) bool { return o == s })
	if d.shader == s {
		d.shader = nil
	}
}

// draw issues a draw of the bound mesh with the bound shader's uniforms.
func (d *Device) draw(vertices, instances uint32) {
	s := d.shader
	if d.pass == nil || s == nil || d.mesh == nil {
		d.stats.Dropped++
		return
	}
	group, ok := s.flush()
	if !ok {
		d.stats.Dropped++
		return
	}
	d.pass.SetBindGroup(0, group, nil)
	d.pass.Draw(vertices, instances, 0, 0)
	d.stats.Draws++
}
