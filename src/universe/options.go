package universe

//Options represents the Universe's configurable options
type Options struct {
	Width     int
	Height    int
	Randomize bool  //seed the field with random data instead of leaving it empty
	Seed      int64 //random generator seed, 0 means seed from the clock
}

//default options
const (
	DefWidth  = 64
	DefHeight = 64
)

var DefaultOptions = Options{
	Width:  DefWidth,
	Height: DefHeight,
}
