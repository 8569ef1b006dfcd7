package exception

import (
	"os"
	"runtime/debug"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/monitoring"
)

func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", name, r, string(debug.Stack()))
			}
		}()
		fn()
	}()
}

func SafeGoWithPanic(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", name, r, string(debug.Stack()))
				os.Exit(1)
			}
		}()
		fn()
	}()
}
