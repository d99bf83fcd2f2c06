package service

type channel int

const (
	draftDescription channel = iota
	draftImage
	stylistAdvice
	channelCount
)

// generations tracks the latest request token per advisory channel. A
// result is applied only when its token is still the latest.
type generations [channelCount]uint64

func (g *generations) next(ch channel) uint64 {
	g[ch]++
	return g[ch]
}

func (g *generations) isLatest(ch channel, token uint64) bool {
	return g[ch] == token
}

func (g *generations) invalidate(chs ...channel) {
	for _, ch := range chs {
		g[ch]++
	}
}
