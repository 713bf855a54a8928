package util

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"strings"
	"time"
	"unicode"
)

// Stats logs the elapsed time and memory statistics at debug level when the
// returned func is called.
func Stats() func() {
	start := time.Now()
	return func() {
		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			return
		}

		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		log.Debug().Msgf("time to run %v", time.Since(start))
		log.Debug().Msgf("Alloc: %d MB, TotalAlloc: %d MB, Sys: %d MB",
			ms.Alloc/1024/1024, ms.TotalAlloc/1024/1024, ms.Sys/1024/1024)
		log.Debug().Msgf("HeapAlloc: %d MB, HeapObjects: %d", ms.HeapAlloc/1024/1024, ms.HeapObjects)
	}
}

func ApplyCliSettings(verbose bool, profile bool, pprofPort uint16) {
	if verbose {
		log.Warn().Msgf("verbosity up")
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if profile {
		log.Info().Msgf("profiling is enabled for this session. Server will listen on port %d", pprofPort)
		go func() {
			if err := http.ListenAndServe(fmt.Sprintf("localhost:%d", pprofPort), nil); err != nil {
				log.Error().Err(err).Msgf("error starting profiling server on port %d", pprofPort)
				return
			}
		}()
	}
}

// CheckRam warns when holding required bytes in memory would not fit in the
// RAM currently available. It returns false in that case.
func CheckRam(required uint64) bool {
	if required == 0 {
		return true
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		log.Debug().Err(err).Msgf("could not read the available memory, estimated use is %d MiB", required/(1024*1024))
		return true
	}

	log.Debug().Msgf("system has %.2f MiB of RAM available", float64(memStat.Available)/(1024*1024))
	if required > memStat.Available {
		log.Warn().Msgf("loading needs about %d MiB but only %d MiB are available. Expect disk swapping and general slowness",
			required/(1024*1024), memStat.Available/(1024*1024))
		return false
	}

	return true
}

// ToScreamingSnakeCase turns a Go identifier such as TLSCert into TLS_CERT.
func ToScreamingSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}

	return b.String()
}
