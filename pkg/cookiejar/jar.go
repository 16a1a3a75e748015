package cookiejar

import (
	"net/http"
	"strings"
)

// Jar collects the cookies of a single request: the incoming set parsed once
// from the Cookie header, and the outgoing set accumulated while the request
// is processed. One Jar per request; not safe for concurrent use.
type Jar struct {
	incoming []*http.Cookie
	outgoing []*http.Cookie
}

// New creates an empty jar.
func New() *Jar {
	return &Jar{}
}

// FromRequest creates a jar seeded with the request's Cookie header.
// A missing or malformed header yields an empty incoming set.
func FromRequest(r *http.Request) *Jar {
	j := New()
	if r == nil {
		return j
	}
	if header := r.Header.Get("Cookie"); header != "" {
		j.incoming = Parse(header)
	}
	return j
}

// Parse splits a raw Cookie header into discrete name/value pairs.
// Duplicate names are preserved as independent entries in source order.
// A malformed pair is skipped without dropping the rest of the header.
func Parse(header string) []*http.Cookie {
	if cookies, err := http.ParseCookie(header); err == nil {
		return cookies
	}
	// Strict parsing rejects the whole header on one bad pair; retry
	// segment by segment so the valid pairs survive.
	var out []*http.Cookie
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if cookies, err := http.ParseCookie(part); err == nil {
			out = append(out, cookies...)
		}
	}
	return out
}

// Len returns the number of outgoing cookies.
func (j *Jar) Len() int {
	return len(j.outgoing)
}

// Incoming returns all cookies with the given name, in source order.
func (j *Jar) Incoming(name string) []*http.Cookie {
	return filterByName(j.incoming, name)
}

// FirstIncoming returns the first incoming cookie with the given name,
// or nil.
func (j *Jar) FirstIncoming(name string) *http.Cookie {
	return first(j.incoming, name)
}

// LastIncoming returns the last incoming cookie with the given name, or nil.
func (j *Jar) LastIncoming(name string) *http.Cookie {
	return last(j.incoming, name)
}

// Outgoing returns all outgoing cookies with the given name.
func (j *Jar) Outgoing(name string) []*http.Cookie {
	return filterByName(j.outgoing, name)
}

// FirstOutgoing returns the first outgoing cookie with the given name,
// or nil.
func (j *Jar) FirstOutgoing(name string) *http.Cookie {
	return first(j.outgoing, name)
}

// LastOutgoing returns the last outgoing cookie with the given name, or nil.
func (j *Jar) LastOutgoing(name string) *http.Cookie {
	return last(j.outgoing, name)
}

// AppendOutgoing appends a cookie without touching existing entries.
// Use this for legitimately multi-valued cookies.
func (j *Jar) AppendOutgoing(c *http.Cookie) {
	if c == nil {
		return
	}
	j.outgoing = append(j.outgoing, c)
}

// SetOutgoing removes all existing outgoing entries with the same name and
// appends the cookie: last write wins, one visible outgoing cookie per name.
func (j *Jar) SetOutgoing(c *http.Cookie) {
	if c == nil {
		return
	}
	j.outgoing = removeByName(j.outgoing, c.Name)
	j.outgoing = append(j.outgoing, c)
}

// Remove replaces any outgoing entry with an expiring empty-value cookie so
// the client clears it.
func (j *Jar) Remove(name string) {
	j.outgoing = removeByName(j.outgoing, name)
	j.outgoing = append(j.outgoing, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Serialize renders each outgoing cookie in Set-Cookie attribute syntax,
// one entry per cookie.
func (j *Jar) Serialize() []string {
	out := make([]string, 0, len(j.outgoing))
	for _, c := range j.outgoing {
		if s := c.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WriteTo merges the outgoing cookies into a response header set. Existing
// Set-Cookie values are kept; the jar's cookies are added after them, so
// neither source is dropped.
func (j *Jar) WriteTo(h http.Header) {
	for _, s := range j.Serialize() {
		h.Add("Set-Cookie", s)
	}
}

func filterByName(cookies []*http.Cookie, name string) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range cookies {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func removeByName(cookies []*http.Cookie, name string) []*http.Cookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

func first(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func last(cookies []*http.Cookie, name string) *http.Cookie {
	for i := len(cookies) - 1; i >= 0; i-- {
		if cookies[i].Name == name {
			return cookies[i]
		}
	}
	return nil
}
