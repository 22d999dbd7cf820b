// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ringnet

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// TraceLog records the per-step outputs that downstream consumers
// (plotting, analysis) read: the global time series with every cell's
// soma voltage, and the spike raster.  Tables are plain etable data --
// no plotting or file I/O happens here.
type TraceLog struct {
	Trace  *etable.Table `desc:"per-step record: Time column plus one CellN:Vm column per cell (mV)"`
	Spikes *etable.Table `desc:"spike raster: one row per spike with Cell gid and Time (msec)"`
}

// NewTraceLog returns a trace log configured for n cells
func NewTraceLog(n int) *TraceLog {
	tl := &TraceLog{}
	tl.Trace = &etable.Table{}
	tl.ConfigTrace(tl.Trace, n)
	tl.Spikes = &etable.Table{}
	tl.ConfigSpikes(tl.Spikes)
	return tl
}

func (tl *TraceLog) ConfigTrace(dt *etable.Table, n int) {
	dt.SetMetaData("name", "RingTrace")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil},
	}
	for i := 0; i < n; i++ {
		sch = append(sch, etable.Column{Name: fmt.Sprintf("Cell%d:Vm", i), Type: etensor.FLOAT32, CellShape: nil, DimNames: nil})
	}
	dt.SetFromSchema(sch, 0)
}

func (tl *TraceLog) ConfigSpikes(dt *etable.Table) {
	dt.SetMetaData("name", "RingSpikes")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Cell", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Time", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 0)
}

// Reset clears all recorded rows
func (tl *TraceLog) Reset() {
	tl.Trace.SetNumRows(0)
	tl.Spikes.SetNumRows(0)
}

// Record appends one row of the current network state at the current
// time -- called once at init (row 0) and once per step thereafter
func (tl *TraceLog) Record(tm *Time, nt *Network) {
	row := tl.Trace.Rows
	tl.Trace.SetNumRows(row + 1)
	tl.Trace.SetCellFloat("Time", row, float64(tm.Time))
	for i, cl := range nt.Cells {
		tl.Trace.SetCellFloat(fmt.Sprintf("Cell%d:Vm", i), row, float64(cl.SomaVm()))
	}
}

// RecordSpike appends one spike raster row
func (tl *TraceLog) RecordSpike(gid int, ts float32) {
	row := tl.Spikes.Rows
	tl.Spikes.SetNumRows(row + 1)
	tl.Spikes.SetCellFloat("Cell", row, float64(gid))
	tl.Spikes.SetCellFloat("Time", row, float64(ts))
}

// VmTrace returns the recorded voltage trace for one cell as a slice,
// paired with Times for the global time series
func (tl *TraceLog) VmTrace(gid int) []float64 {
	col := tl.Trace.ColByName(fmt.Sprintf("Cell%d:Vm", gid))
	if col == nil {
		return nil
	}
	out := make([]float64, tl.Trace.Rows)
	for i := range out {
		out[i] = col.FloatVal1D(i)
	}
	return out
}

// Times returns the recorded global time series as a slice
func (tl *TraceLog) Times() []float64 {
	col := tl.Trace.ColByName("Time")
	if col == nil {
		return nil
	}
	out := make([]float64, tl.Trace.Rows)
	for i := range out {
		out[i] = col.FloatVal1D(i)
	}
	return out
}
