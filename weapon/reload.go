package weapon

import "github.com/milk9111/gunplay/schedule"

// reloadPoller is the single live completion check of a reload. Exactly one
// of task or unwatch is set.
type reloadPoller struct {
	task    *schedule.Task
	unwatch func()
}

func (p *reloadPoller) stop() {
	if p == nil {
		return
	}
	p.task.Cancel()
	if p.unwatch != nil {
		p.unwatch()
		p.unwatch = nil
	}
}

// StartReloading begins a reload. While firing with no reserve ammunition it
// stops firing instead. A reload already in progress is left alone.
func (h *Holder) StartReloading() {
	if h.weapon == nil {
		return
	}
	if h.firing && h.weapon.BulletsAvailable() <= 0 {
		h.log.Debug().Msg("reload refused: no reserve ammunition, stopping fire")
		h.StopFiring()
		return
	}
	if h.reloading {
		return
	}

	if h.cfg.ResumeFireAfterReload {
		h.wasFiring = h.firing
	}
	h.reloading = true
	h.player.SetReloading(true)
	h.anim.SetBool(ParamIsReloading, true)
	h.weapon.StartReloading()
	h.watchReload()

	h.log.Debug().
		Int("clip", h.weapon.BulletsInClip()).
		Int("available", h.weapon.BulletsAvailable()).
		Msg("reload started")
}

func (h *Holder) watchReload() {
	h.cancelReload()

	if h.cfg.NotifyReloadCompletion {
		if w, ok := h.anim.(BoolWatcher); ok {
			h.reload = &reloadPoller{unwatch: w.WatchBool(ParamIsReloading, func(v bool) {
				if !v {
					h.checkReload()
				}
			})}
			return
		}
	}

	if h.tasks == nil {
		h.log.Error().Msg("reload: no scheduler, completion will never be observed")
		return
	}
	h.reload = &reloadPoller{task: h.tasks.InvokeRepeating(0, h.cfg.ReloadPollPeriod, h.checkReload)}
}

// checkReload is the poller tick. The animation layer owns completion: the
// reload ends only once IsReloading reads false.
func (h *Holder) checkReload() {
	if !h.reloading || h.weapon == nil {
		h.cancelReload()
		return
	}
	if h.anim.Bool(ParamIsReloading) {
		return
	}
	h.finishReload()
}

func (h *Holder) finishReload() {
	h.cancelReload()
	h.reloading = false
	h.player.SetReloading(false)
	h.weapon.StopReloading()

	h.log.Debug().
		Int("clip", h.weapon.BulletsInClip()).
		Int("available", h.weapon.BulletsAvailable()).
		Msg("reload finished")

	resume := h.wasFiring && h.latch.Pressed()
	h.wasFiring = false
	if resume {
		h.StartFiring()
	}
}

// cancelReload is the only place a poller is torn down.
func (h *Holder) cancelReload() {
	h.reload.stop()
	h.reload = nil
}
