package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mahdiidarabi/ed25519-core/pkg/ed25519"
)

func main() {
	var (
		mode      = flag.String("mode", "", "Operation: keygen, sign, or verify")
		seedHex   = flag.String("seed", "", "32-byte seed in hex (keygen/sign; keygen generates one when omitted)")
		publicHex = flag.String("public-key", "", "32-byte public key in hex (verify)")
		sigHex    = flag.String("signature", "", "64-byte signature in hex (verify)")
		inFile    = flag.String("in", "", "Message file to sign or verify (- or empty reads stdin)")
		strict    = flag.Bool("strict", false, "Reject small-order public keys and R components during verification")
	)
	flag.Parse()

	switch *mode {
	case "keygen":
		runKeygen(*seedHex)
	case "sign":
		runSign(*seedHex, *inFile)
	case "verify":
		runVerify(*publicHex, *sigHex, *inFile, *strict)
	default:
		fmt.Fprintf(os.Stderr, "Error: --mode must be keygen, sign, or verify\n")
		flag.Usage()
		os.Exit(1)
	}
}

func runKeygen(seedHex string) {
	var kp *ed25519.Keypair
	var err error

	if seedHex == "" {
		kp, err = ed25519.Generate()
	} else {
		var seed []byte
		seed, err = hex.DecodeString(seedHex)
		if err == nil {
			kp, err = ed25519.FromSeed(seed)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed:       %x\n", kp.Seed())
	fmt.Printf("Public key: %x\n", kp.PublicKey())
}

func runSign(seedHex, inFile string) {
	if seedHex == "" {
		fmt.Fprintf(os.Stderr, "Error: --seed is required for sign\n")
		os.Exit(1)
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid seed hex: %v\n", err)
		os.Exit(1)
	}

	kp, err := ed25519.FromSeed(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	message, err := readMessage(inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sig := kp.Sign(message)
	fmt.Printf("Public key: %x\n", kp.PublicKey())
	fmt.Printf("Signature:  %x\n", sig.Bytes())
}

func runVerify(publicHex, sigHex, inFile string, strict bool) {
	if publicHex == "" || sigHex == "" {
		fmt.Fprintf(os.Stderr, "Error: --public-key and --signature are required for verify\n")
		os.Exit(1)
	}

	public, err := hex.DecodeString(publicHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid public key hex: %v\n", err)
		os.Exit(1)
	}

	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid signature hex: %v\n", err)
		os.Exit(1)
	}

	sig, err := ed25519.SignatureFromBytes(sigBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	message, err := readMessage(inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verifier := ed25519.NewVerifier().WithStrictValidation(strict)
	ok, err := verifier.Verify(public, message, sig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !ok {
		fmt.Println("Signature: INVALID")
		os.Exit(1)
	}
	fmt.Println("Signature: valid")
}

func readMessage(inFile string) ([]byte, error) {
	if inFile == "" || inFile == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(inFile)
}
