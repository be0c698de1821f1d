package turret

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// The two persisted preference documents. Each is a small JSON blob
// loaded at startup and overwritten wholesale on every save.
const (
	softLimitsFile        = "soft_limits.json"
	trackingInversionFile = "tracking_inversion.json"
)

type trackingInversionDoc struct {
	InvertX bool `json:"invert_x"`
	InvertY bool `json:"invert_y"`
}

func (c *Controller) prefPath(name string) string {
	dir := c.cfg.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

func (c *Controller) loadPrefs() {
	c.loadSoftLimits()
	c.loadTrackingInversion()
}

func (c *Controller) loadSoftLimits() {
	data, err := os.ReadFile(c.prefPath(softLimitsFile))
	if os.IsNotExist(err) {
		log.Println("turret: no soft limits file yet")
		return
	}
	if err != nil {
		log.Println("turret: failed to load soft limits:", err)
		return
	}
	var lim SoftLimits
	if err := json.Unmarshal(data, &lim); err != nil {
		log.Println("turret: failed to parse soft limits:", err)
		return
	}
	c.stateMu.Lock()
	c.limits = lim
	c.stateMu.Unlock()
	log.Printf("turret: soft limits loaded: %s", data)
}

func (c *Controller) saveSoftLimits() error {
	c.stateMu.Lock()
	lim := c.limits.clone()
	c.stateMu.Unlock()

	data, err := json.Marshal(lim)
	if err != nil {
		return err
	}
	if err := c.writePref(softLimitsFile, data); err != nil {
		log.Println("turret: failed to save soft limits:", err)
		return err
	}
	log.Printf("turret: soft limits saved: %s", data)
	return nil
}

func (c *Controller) loadTrackingInversion() {
	data, err := os.ReadFile(c.prefPath(trackingInversionFile))
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		log.Println("turret: failed to load tracking inversion:", err)
		return
	}
	var doc trackingInversionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Println("turret: failed to parse tracking inversion:", err)
		return
	}
	c.stateMu.Lock()
	c.invertX = 1
	if doc.InvertX {
		c.invertX = -1
	}
	c.invertY = 1
	if doc.InvertY {
		c.invertY = -1
	}
	c.stateMu.Unlock()
	log.Printf("turret: tracking inversion loaded: %s", data)
}

func (c *Controller) saveTrackingInversion(invertX, invertY bool) error {
	data, err := json.Marshal(trackingInversionDoc{InvertX: invertX, InvertY: invertY})
	if err != nil {
		return err
	}
	if err := c.writePref(trackingInversionFile, data); err != nil {
		log.Println("turret: failed to save tracking inversion:", err)
		return err
	}
	log.Printf("turret: tracking inversion saved: %s", data)
	return nil
}

func (c *Controller) writePref(name string, data []byte) error {
	if c.cfg.DataDir != "" {
		if err := os.MkdirAll(c.cfg.DataDir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(c.prefPath(name), data, 0644)
}
