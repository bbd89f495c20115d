package main

import (
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// StatusReport je "snímek" stavu hostitele a tohoto procesu.
// Hodí se pro rychlou diagnostiku přes prohlížeč, když se cave dashboard
// chová divně (typicky: RPi došla paměť).
type StatusReport struct {
	// CPULoad: průměrné vytížení procesoru v procentech (0-100).
	CPULoad float64 `json:"cpuLoad"`

	// RAM hostitele v MB. RamUsedMB je počítáno jako Total - Available,
	// protože Linux drží volnou RAM jako diskovou cache a prosté "Used"
	// by ukazovalo skoro plnou paměť i na nevytíženém stroji.
	RamUsedMB  float64 `json:"ramUsedMb"`
	RamTotalMB float64 `json:"ramTotalMb"`

	// ProcessRSSMB: fyzická paměť (RSS), kterou drží tento proces.
	// Roste s počtem senzorů - historie na senzor je omezená (H záznamů),
	// ale počet senzorů omezený není, takže tohle je číslo, které hlídáme.
	ProcessRSSMB float64 `json:"processRssMb"`

	// UptimeSeconds: jak dlouho služba běží. Zároveň říká, jak stará může
	// být nejstarší historie - po restartu začínáme s prázdným store.
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// startedAt se nastaví při startu procesu (inicializace package proměnné).
var startedAt = time.Now()

// CollectStatus posbírá statistiky přes gopsutil.
// Chyby jednotlivých měření nezastavují ostatní - co se nepovede, zůstane 0.
func CollectStatus() StatusReport {
	report := StatusReport{
		UptimeSeconds: time.Since(startedAt).Seconds(),
	}

	// Měření CPU: funkce na sekundu uspí vlákno a spočítá rozdíl čítačů.
	// Blokuje jen goroutinu tohoto requestu, store ani MQTT to nezdržuje.
	percentages, err := cpu.Percent(time.Second, false)
	if err == nil && len(percentages) > 0 {
		report.CPULoad = percentages[0]
	}

	vMem, err := mem.VirtualMemory()
	if err == nil {
		realUsedBytes := vMem.Total - vMem.Available
		report.RamUsedMB = float64(realUsedBytes) / 1024.0 / 1024.0
		report.RamTotalMB = float64(vMem.Total) / 1024.0 / 1024.0
	}

	// RSS vlastního procesu (bez swapu a sdílených knihoven).
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil {
			report.ProcessRSSMB = float64(memInfo.RSS) / 1024.0 / 1024.0
		}
	}

	return report
}

// handleStatus: GET /status
func (h *APIHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, CollectStatus())
}
