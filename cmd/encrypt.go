/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/machine"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	pemType       = "ENIGMA MESSAGE"
	groupSize     = 5
	groupsPerLine = 10
)

var (
	usePem bool
	useRaw bool
	wg     sync.WaitGroup
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [message]",
	Short: "Encipher a message",
	Long: `Encipher a message with the configured machine.

The message is taken from the command line, the input file, or standard input.
Letters are upper-cased and everything else is dropped before enciphering.
The result is written in groups of five letters unless --raw or --usePem is given.

With --usePem the letters are base64 encoded inside the PEM block, so the
armoured text does not show the cipher letters or their groups.  decrypt
recognises the PEM block on its input and decodes it first.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:     "decrypt [message]",
	Aliases: []string{"decode"},
	Short:   "Decipher a message",
	Long: `Decipher a message with the configured machine.

Enciphering and deciphering are the same operation on an Enigma, so this
differs from encrypt only in reading PEM armoured input, whose Positions
header sets the start positions unless --positions is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
		c.Flags().BoolVarP(&useRaw, "raw", "r", false, "write the letters without five letter groups")
	}
}

/*
getInput returns the reader holding the message.  Command line arguments
take precedence over the input file.  If the message is read from a
terminal, the user is prompted for a single line.
*/
func getInput(args []string, fin *os.File) io.Reader {
	if len(args) > 0 {
		return strings.NewReader(strings.Join(args, " "))
	}

	if fin == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the message: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		checkError(err)
		return strings.NewReader(line)
	}

	return fin
}

// letters upper-cases the letters in p and drops everything else.
func letters(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, c := range p {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if cryptors.IsLetter(c) {
			out = append(out, c)
		}
	}
	return out
}

// cipherHelper feeds the letters read from rdr through the encryption
// pipeline and makes the result available on the returned reader.
func cipherHelper(rdr io.Reader, left chan machine.Block, right chan machine.Block) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer rWrtr.Close()
		var err error
		var cnt int
		text := make([]byte, 0)

		send := func(p []byte) {
			blk := machine.NewBlock(p)
			left <- blk
			blk = <-right
			checkError(blk.Err)
			_, err1 := rWrtr.Write(blk.Data[:blk.Length])
			checkError(err1)
		}

		for err != io.EOF {
			b := make([]byte, 2048)
			cnt, err = rdr.Read(b)
			checkError(err)
			text = append(text, letters(b[:cnt])...)
			for len(text) >= machine.BlockSize {
				send(text[:machine.BlockSize])
				text = text[machine.BlockSize:]
			}
		}

		if len(text) > 0 {
			send(text)
		}

		// shutdown the machine by processing a Block with zero length.
		left <- machine.Block{}
		<-right
	}()

	return rRdr
}

// groupHelper splits the letters read from rdr into groups of five, ten
// groups to a line.
func groupHelper(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer rWrtr.Close()
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(rWrtr)
		n := 0

		for {
			c, err := bRdr.ReadByte()
			if err != nil {
				checkError(err)
				break
			}
			if n > 0 {
				switch {
				case n%(groupSize*groupsPerLine) == 0:
					checkError(bWrtr.WriteByte('\n'))
				case n%groupSize == 0:
					checkError(bWrtr.WriteByte(' '))
				}
			}
			checkError(bWrtr.WriteByte(c))
			n++
		}

		if n > 0 {
			checkError(bWrtr.WriteByte('\n'))
		}
		checkError(bWrtr.Flush())
	}()

	return rRdr
}

// writeOutput copies the enciphered letters to fout in the selected format.
func writeOutput(fout io.Writer, encOut *io.PipeReader, start machine.Positions) {
	var err error
	switch {
	case usePem:
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = make(map[string]string)
		blck.Headers["Positions"] = start.String()
		blck.Headers["Version"] = Version
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encOut), blck))
	case useRaw:
		_, err = io.Copy(fout, lines.SplitToLines(encOut))
	default:
		_, err = io.Copy(fout, groupHelper(encOut))
	}
	checkError(err)
}

func encrypt(args []string) {
	m := initMachine()
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	start := m.Positions()
	left, right := machine.CreateEncryptMachine(m)
	encOut := cipherHelper(getInput(args, fin), left, right)
	writeOutput(fout, encOut, start)
	wg.Wait()
	logger.Debug("encrypted", "start", start.String(), "end", m.Positions().String())
}

func decrypt(cmd *cobra.Command, args []string) {
	m := initMachine()
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	var rdr io.Reader = getInput(args, fin)

	if len(args) == 0 {
		bRdr := bufio.NewReader(rdr)
		rdr = bRdr
		b, err := bRdr.Peek(5)
		checkError(err)
		if string(b) == "-----" {
			pRdr, blck := pem.FromPem(bRdr)
			rdr = pRdr
			if p, ok := blck.Headers["Positions"]; ok && !cmd.Flags().Changed("positions") {
				v, err := machine.ParseLetters(p)
				cobra.CheckErr(err)
				cobra.CheckErr(m.SetPositions(machine.Positions{Left: v[0], Middle: v[1], Right: v[2]}))
				logger.Debug("start positions from PEM header", "positions", p)
			}
		}
	}

	start := m.Positions()
	left, right := machine.CreateEncryptMachine(m)
	decOut := cipherHelper(rdr, left, right)
	writeOutput(fout, decOut, start)
	wg.Wait()
	logger.Debug("decrypted", "start", start.String(), "end", m.Positions().String())
}
