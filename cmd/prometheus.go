package cmd

import (
	"github.com/prometheus/client_golang/prometheus"

	sim "github.com/mlfq-sim/mlfq-sim/sim"
)

// runGauges are the Prometheus series written for one run.
type runGauges struct {
	makespan           prometheus.Gauge
	idle               prometheus.Gauge
	utilization        prometheus.Gauge
	completed          prometheus.Gauge
	contextSwitches    prometheus.Gauge
	demotions          prometheus.Gauge
	arrivalPreemptions prometheus.Gauge
	avgTurnaround      prometheus.Gauge
	avgWaiting         prometheus.Gauge
	avgResponse        prometheus.Gauge
	processTurnaround  *prometheus.GaugeVec
	processWaiting     *prometheus.GaugeVec
	processResponse    *prometheus.GaugeVec
	processDemotions   *prometheus.GaugeVec
}

func newRunGauges(runID string) *runGauges {
	labels := prometheus.Labels{"run_id": runID}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels})
	}
	perProcess := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels}, []string{"process"})
	}
	return &runGauges{
		makespan:           gauge("mlfq_makespan_ticks", "Final simulation clock"),
		idle:               gauge("mlfq_idle_ticks", "Ticks with no runnable process"),
		utilization:        gauge("mlfq_cpu_utilization_ratio", "Busy ticks over makespan"),
		completed:          gauge("mlfq_completed_processes", "Processes that consumed their whole burst"),
		contextSwitches:    gauge("mlfq_context_switches", "Transitions between Gantt chart entries"),
		demotions:          gauge("mlfq_demotions", "Quantum exhaustions that moved a process down a level"),
		arrivalPreemptions: gauge("mlfq_arrival_preemptions", "Runs cut short by an arrival"),
		avgTurnaround:      gauge("mlfq_avg_turnaround_ticks", "Mean completion minus arrival"),
		avgWaiting:         gauge("mlfq_avg_waiting_ticks", "Mean turnaround minus burst"),
		avgResponse:        gauge("mlfq_avg_response_ticks", "Mean first dispatch minus arrival"),
		processTurnaround:  perProcess("mlfq_process_turnaround_ticks", "Completion minus arrival per process"),
		processWaiting:     perProcess("mlfq_process_waiting_ticks", "Turnaround minus burst per process"),
		processResponse:    perProcess("mlfq_process_response_ticks", "First dispatch minus arrival per process"),
		processDemotions:   perProcess("mlfq_process_demotions", "Demotions per process"),
	}
}

func (g *runGauges) register(reg *prometheus.Registry) {
	reg.MustRegister(
		g.makespan, g.idle, g.utilization, g.completed, g.contextSwitches,
		g.demotions, g.arrivalPreemptions, g.avgTurnaround, g.avgWaiting, g.avgResponse,
		g.processTurnaround, g.processWaiting, g.processResponse, g.processDemotions,
	)
}

func (g *runGauges) observe(m *sim.Metrics) {
	g.makespan.Set(float64(m.Makespan))
	g.idle.Set(float64(m.IdleTime))
	g.utilization.Set(m.CPUUtilization)
	g.completed.Set(float64(m.CompletedProcesses))
	g.contextSwitches.Set(float64(m.ContextSwitches))
	g.demotions.Set(float64(m.Demotions))
	g.arrivalPreemptions.Set(float64(m.ArrivalPreemptions))
	g.avgTurnaround.Set(m.AvgTurnaround)
	g.avgWaiting.Set(m.AvgWaiting)
	g.avgResponse.Set(m.AvgResponse)
	for _, p := range m.Processes {
		g.processDemotions.WithLabelValues(p.Name).Set(float64(p.Demotions))
		if p.Response >= 0 {
			g.processResponse.WithLabelValues(p.Name).Set(float64(p.Response))
		}
		// unfinished processes have no turnaround yet
		if p.Turnaround < 0 {
			continue
		}
		g.processTurnaround.WithLabelValues(p.Name).Set(float64(p.Turnaround))
		g.processWaiting.WithLabelValues(p.Name).Set(float64(p.Waiting))
	}
}

// gatherRun builds a private registry holding the metrics of result.
func gatherRun(result *sim.Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	g := newRunGauges(result.RunID)
	g.register(reg)
	g.observe(result.Metrics)
	return reg
}

// exportMetrics writes the run's metrics in the Prometheus text exposition format.
func exportMetrics(path string, result *sim.Result) error {
	return prometheus.WriteToTextfile(path, gatherRun(result))
}
