package worker

// vencimiento_cron.go
// Background goroutine that periodically expires forms whose date window
// closed and queues notice emails for forms about to expire. A Redis SETNX
// lock keeps the sweep single-flight when several instances run.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"
	"github.com/alexpardox/mercaproject/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const barridoLockKey = "lock:barrido_vencimientos"

// VencimientoCronConfig holds all dependencies for the sweep goroutine.
type VencimientoCronConfig struct {
	Formularios    service.FormularioService
	FormularioRepo repository.FormularioRepository
	Dispatcher     *Dispatcher
	RDB            *redis.Client
	Interval       time.Duration
	DiasAviso      int
}

// StartVencimientoCron launches the sweep goroutine. It respects the
// context for graceful shutdown.
func StartVencimientoCron(ctx context.Context, cfg VencimientoCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("vencimiento_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-ticker.C:
				runBarrido(ctx, cfg)
			}
		}
	}()
}

func runBarrido(ctx context.Context, cfg VencimientoCronConfig) {
	// Leader lock: only one instance sweeps per tick. The TTL covers the
	// tick so a crashed holder frees the lock by expiry.
	ok, err := cfg.RDB.SetNX(ctx, barridoLockKey, "1", cfg.Interval).Result()
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: lock acquisition failed")
		return
	}
	if !ok {
		log.Debug().Msg("vencimiento_cron: another instance holds the lock, skipping tick")
		return
	}

	vencidos, err := cfg.Formularios.BarrerVencidos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: sweep failed")
		return
	}
	if vencidos > 0 {
		log.Info().Int("vencidos", vencidos).Msg("vencimiento_cron: formularios expirados")
	}

	encolarAvisos(ctx, cfg)

	if n, err := DLQLength(ctx, cfg.RDB, QueueAvisos); err == nil && n > 0 {
		log.Warn().Int64("backlog", n).Msg("vencimiento_cron: avisos en DLQ esperando revisión")
	}
}

// encolarAvisos queues one summary email per owning user with an email
// address, listing that user's forms expiring within the notice window.
func encolarAvisos(ctx context.Context, cfg VencimientoCronConfig) {
	ahora := time.Now()
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	proximos, err := cfg.FormularioRepo.ListProximosAVencer(ctx, hoy, hoy.AddDate(0, 0, cfg.DiasAviso))
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: query próximos a vencer failed")
		return
	}
	if len(proximos) == 0 {
		return
	}

	porUsuario := make(map[uuid.UUID][]*model.Formulario)
	usuarios := make(map[uuid.UUID]*model.Usuario)
	for i := range proximos {
		f := &proximos[i]
		if f.Usuario == nil || f.Usuario.Email == "" {
			continue
		}
		porUsuario[f.UsuarioID] = append(porUsuario[f.UsuarioID], f)
		usuarios[f.UsuarioID] = f.Usuario
	}

	for uid, formularios := range porUsuario {
		u := usuarios[uid]
		var b strings.Builder
		fmt.Fprintf(&b, "Hola %s,\n\nLos siguientes formularios vencen en los próximos %d días:\n\n", u.NombreCompleto, cfg.DiasAviso)
		for _, f := range formularios {
			proveedor := ""
			if f.Proveedor != nil {
				proveedor = f.Proveedor.Nombre
			}
			fmt.Fprintf(&b, "- %s / %s (%s) — vence el %s\n",
				f.NombreTienda, proveedor, f.TipoEspacio.Descripcion(), f.FechaFin.Format("02/01/2006"))
		}
		b.WriteString("\nIngresa al sistema para renovarlos o cancelarlos.\n")

		payload := AvisoJobPayload{
			ToEmail: u.Email,
			Usuario: u.Username,
			Subject: fmt.Sprintf("Formularios próximos a vencer (%d)", len(formularios)),
			Body:    b.String(),
		}
		if err := cfg.Dispatcher.EnqueueAviso(ctx, payload); err != nil {
			log.Error().Err(err).Str("usuario", u.Username).Msg("vencimiento_cron: enqueue aviso failed")
		}
	}
}
