// Command shadow_compare replays read-only ledger requests against the legacy
// service and this API and reports where the payloads diverge.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ledger-api/internal/models"
	"github.com/noah-isme/lms-ledger-api/internal/service"
	"github.com/noah-isme/lms-ledger-api/pkg/config"
)

type target struct {
	Path     string          `json:"path"`
	UserID   string          `json:"userId"`
	Role     models.UserRole `json:"role"`
	Critical bool            `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target       target
	GoStatus     int
	LegacyStatus int
	StatusMatch  bool
	BodyMatch    bool
	Err          error
}

func (c comparison) breaking() bool {
	return c.Target.Critical && (c.Err != nil || !c.StatusMatch || !c.BodyMatch)
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)
	flag.StringVar(&goBase, "go-base", "http://localhost:8080/api/v1", "ledger API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000/api", "legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	logr, _ := zap.NewDevelopment()
	defer logr.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logr.Fatal("load config", zap.Error(err))
	}
	targets, err := loadTargets(targetsPath)
	if err != nil {
		logr.Fatal("load targets", zap.Error(err))
	}

	tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, Expiration: time.Minute})
	client := &http.Client{Timeout: timeout}

	breaking := 0
	for _, t := range targets {
		token, err := tokens.Issue(t.UserID, t.Role)
		if err != nil {
			logr.Fatal("issue token", zap.Error(err))
		}
		comp := compareTarget(client, goBase, legacyBase, token, t)
		report(logr, comp)
		if comp.breaking() {
			breaking++
		}
	}

	fmt.Printf("breaking diffs: %d of %d targets\n", breaking, len(targets))
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(client *http.Client, goBase, legacyBase, token string, t target) comparison {
	comp := comparison{Target: t}
	goStatus, goBody, err := fetch(client, goBase, t.Path, token)
	if err != nil {
		comp.Err = fmt.Errorf("ledger api: %w", err)
		return comp
	}
	legacyStatus, legacyBody, err := fetch(client, legacyBase, t.Path, token)
	if err != nil {
		comp.Err = fmt.Errorf("legacy api: %w", err)
		return comp
	}
	comp.GoStatus, comp.LegacyStatus = goStatus, legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = payloadsEqual(unwrapEnvelope(goBody), legacyBody)
	return comp
}

func fetch(client *http.Client, base, path, token string) (int, []byte, error) {
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// unwrapEnvelope strips the {"data": ...} envelope; the legacy service answers bare payloads.
func unwrapEnvelope(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Data == nil {
		return body
	}
	return env.Data
}

// payloadsEqual compares JSON documents after canonicalising numbers, so 3 and 3.0 match.
func payloadsEqual(a, b []byte) bool {
	var av, bv interface{}
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return strings.TrimSpace(string(a)) == strings.TrimSpace(string(b))
	}
	ac, _ := json.Marshal(av)
	bc, _ := json.Marshal(bv)
	return string(ac) == string(bc)
}

func report(logr *zap.Logger, c comparison) {
	fields := []zap.Field{
		zap.String("path", c.Target.Path),
		zap.Bool("critical", c.Target.Critical),
		zap.Int("go_status", c.GoStatus),
		zap.Int("legacy_status", c.LegacyStatus),
	}
	switch {
	case c.Err != nil:
		logr.Error("compare failed", append(fields, zap.Error(c.Err))...)
	case !c.StatusMatch || !c.BodyMatch:
		logr.Warn("payload diff", append(fields, zap.Bool("status_match", c.StatusMatch), zap.Bool("body_match", c.BodyMatch))...)
	default:
		logr.Info("match", fields...)
	}
}
