package machine

// BlockSize is the most letters carried by one Block.
const BlockSize = 64

// Block is the unit of work passed through the encryption pipeline.  Length
// is the number of letters in Data to process.  A Block with a Length of
// zero shuts the pipeline down.
type Block struct {
	Length int
	Data   [BlockSize]byte
	Err    error
}

// EncryptMachine starts a goroutine that owns m and enciphers every block
// received on left, sending the result on the returned channel.  The zero
// length block is passed on and ends the goroutine.  A block holding a
// character other than 'A' .. 'Z' is sent back with Err set and the rotors
// unchanged.
func EncryptMachine(m *Machine, left chan Block) chan Block {
	right := make(chan Block)
	go func(m *Machine, left chan Block, right chan Block) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			out, err := m.EncryptBytes(inp.Data[:inp.Length])
			if err != nil {
				inp.Err = err
			} else {
				copy(inp.Data[:], out)
			}
			right <- inp
		}
	}(m, left, right)

	return right
}

// CreateEncryptMachine builds a pipeline around m and returns its input and
// output channels.  m must not be used directly until the pipeline has been
// shut down.
func CreateEncryptMachine(m *Machine) (left chan Block, right chan Block) {
	if m == nil {
		panic("you must give a machine to build the pipeline around!")
	}
	left = make(chan Block)
	right = EncryptMachine(m, left)
	return
}

// NewBlock fills a block from p, which must not be longer than BlockSize.
func NewBlock(p []byte) Block {
	var blk Block
	blk.Length = copy(blk.Data[:], p)
	return blk
}
