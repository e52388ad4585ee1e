package origin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
)

// WatchURLTemplate is the page a media id resolves to on the origin. Cookies
// are matched against it before being forwarded.
const WatchURLTemplate = "https://www.youtube.com/watch?v=%s"

// cookieFields is the browser-export cookie shape the credential bag carries.
type cookieFields struct {
	Name           string   `json:"name"`
	Value          string   `json:"value"`
	Domain         string   `json:"domain"`
	Path           string   `json:"path"`
	ExpirationDate *float64 `json:"expirationDate"`
	Secure         bool     `json:"secure"`
	HTTPOnly       bool     `json:"httpOnly"`
	HostOnly       bool     `json:"hostOnly"`
}

// Agent is the authenticated client context derived from the credential bag.
// It is immutable once built; a new Agent is derived whenever settings change.
// A derivation failure is kept and reported by every fetch that uses the Agent.
type Agent struct {
	jar   *cookiejar.Jar
	count int
	err   error
}

// NewAgent derives an Agent from credentials. It never fails outright.
func NewAgent(creds []domain.Credential) *Agent {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return &Agent{err: fmt.Errorf("failed to create cookie jar: %w", err)}
	}

	a := &Agent{jar: jar}
	for i, raw := range creds {
		cookie, site, err := parseCredential(raw)
		if err != nil {
			a.err = fmt.Errorf("credential %d: %w", i, err)
			return a
		}
		jar.SetCookies(site, []*http.Cookie{cookie})
		a.count++
	}
	return a
}

func parseCredential(raw domain.Credential) (*http.Cookie, *url.URL, error) {
	var in cookieFields
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, nil, fmt.Errorf("malformed cookie: %w", err)
	}
	if in.Name == "" {
		return nil, nil, fmt.Errorf("cookie has no name")
	}

	domainName := in.Domain
	if domainName == "" {
		domainName = constants.DefaultCookieDomain
	}
	host := strings.TrimPrefix(domainName, ".")

	cookie := &http.Cookie{
		Name:     in.Name,
		Value:    in.Value,
		Path:     in.Path,
		Secure:   in.Secure,
		HttpOnly: in.HTTPOnly,
	}
	if cookie.Path == "" {
		cookie.Path = constants.DefaultCookiePath
	}
	if !in.HostOnly {
		cookie.Domain = host
	}
	if in.ExpirationDate != nil {
		sec := int64(*in.ExpirationDate)
		cookie.Expires = time.Unix(sec, 0)
	}

	return cookie, &url.URL{Scheme: "https", Host: host, Path: "/"}, nil
}

// Err returns the derivation error, if any.
func (a *Agent) Err() error {
	if a == nil {
		return nil
	}
	return a.err
}

// Len is the number of credentials loaded into the Agent.
func (a *Agent) Len() int {
	if a == nil {
		return 0
	}
	return a.count
}

// Cookies returns the credentials that apply to target.
func (a *Agent) Cookies(target *url.URL) ([]*http.Cookie, error) {
	if a == nil {
		return nil, nil
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.jar.Cookies(target), nil
}

// Apply adds the cookies that apply to the watch page of mediaID to req.
func (a *Agent) Apply(req *http.Request, mediaID string) error {
	target, err := url.Parse(fmt.Sprintf(WatchURLTemplate, url.QueryEscape(mediaID)))
	if err != nil {
		return err
	}
	cookies, err := a.Cookies(target)
	if err != nil {
		return err
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return nil
}
