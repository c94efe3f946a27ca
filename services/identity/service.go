package identity

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/abtestlabs/campaignstack/config"
	"github.com/abtestlabs/campaignstack/interfaces"
	er "github.com/abtestlabs/campaignstack/internal/errors"
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/tracing"
	"github.com/abtestlabs/campaignstack/internal/utils"
)

type emailCache struct {
	Email string `json:"email"`
}

type identityService struct {
	log logger.Logger
	cfg *config.StorageConfig
	in  io.Reader
	out io.Writer
}

func NewIdentityService(log logger.Logger, cfg *config.StorageConfig, in io.Reader, out io.Writer) interfaces.IdentityService {
	return &identityService{
		log: log,
		cfg: cfg,
		in:  in,
		out: out,
	}
}

// ResolveEmail returns the cached email if one exists, otherwise prompts for
// one, validates it and caches it for subsequent runs. A failed cache write
// is logged but does not fail the resolution.
func (s *identityService) ResolveEmail(ctx context.Context) (string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "IdentityService.ResolveEmail")
	defer span.Finish()
	tracing.TagComponentService(span)

	if email := s.loadCachedEmail(); email != "" {
		tracing.TagUserEmail(span, email)
		s.log.Infof("Using cached email for domain %s", utils.ExtractDomainFromEmail(email))
		return email, nil
	}

	fmt.Fprint(s.out, "Please enter your email address: ")
	scanner := bufio.NewScanner(s.in)
	scanner.Scan()
	email := strings.TrimSpace(scanner.Text())

	if !utils.IsValidEmail(email) {
		tracing.TraceErr(span, er.ErrInvalidEmail)
		return "", er.ErrInvalidEmail
	}

	s.cacheEmail(email)
	tracing.TagUserEmail(span, email)
	return email, nil
}

func (s *identityService) loadCachedEmail() string {
	data, err := os.ReadFile(s.cfg.EmailCacheFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Errorf("Error loading cached email: %v", err)
		}
		return ""
	}

	var cache emailCache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.log.Errorf("Error loading cached email: %v", err)
		return ""
	}

	return cache.Email
}

func (s *identityService) cacheEmail(email string) {
	if err := os.MkdirAll(filepath.Dir(s.cfg.EmailCacheFile), 0o755); err != nil {
		s.log.Errorf("Error caching email: %v", errors.Wrap(err, "failed to create cache directory"))
		return
	}

	data, err := json.Marshal(emailCache{Email: email})
	if err != nil {
		s.log.Errorf("Error caching email: %v", err)
		return
	}

	if err := os.WriteFile(s.cfg.EmailCacheFile, data, 0o644); err != nil {
		s.log.Errorf("Error caching email: %v", err)
	}
}
