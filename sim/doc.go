// Package sim provides the multi-level feedback queue (MLFQ) scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → queued → running → finished)
//   - queue.go: the bounded per-level FIFO queues and the PriorityQueueSet
//   - simulator.go: the scheduling loop (admission, selection, arrival clipping, demotion)
//   - timeline.go: the coalesced Gantt chart
//
// # Scheduling rules
//
// Arrivals always enter level 0. The head of the highest non-empty level runs for
// min(quantum, remaining) ticks, cut short at the next pending arrival. A run that
// ends at an arrival boundary keeps its level; a run that uses the full quantum
// moves one level down, and stays at the lowest level once there. There is no
// aging or promotion.
//
// Sub-packages:
//   - sim/input/: text and YAML configuration loading
//   - sim/workload/: seeded synthetic process tables
//   - sim/trace/: decision trace recording
package sim
