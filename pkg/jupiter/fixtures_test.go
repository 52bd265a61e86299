package jupiter

import "github.com/gagliardetto/solana-go"

const (
	solMint              = "So11111111111111111111111111111111111111112"
	usdcMint             = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	jupProgram           = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	tokenProgram         = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	raydiumAmm           = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	computeBudgetProgram = "ComputeBudget111111111111111111111111111111"
	systemProgram        = "11111111111111111111111111111111"
)

const quoteFixture = `{
	"inputMint": "` + solMint + `",
	"inAmount": "10000000",
	"outputMint": "` + usdcMint + `",
	"outAmount": "1523456",
	"otherAmountThreshold": "1515839",
	"swapMode": "ExactIn",
	"slippageBps": 50,
	"platformFee": null,
	"priceImpactPct": "0.0001",
	"routePlan": [{
		"swapInfo": {
			"ammKey": "` + raydiumAmm + `",
			"label": "Raydium",
			"inputMint": "` + solMint + `",
			"outputMint": "` + usdcMint + `",
			"inAmount": "10000000",
			"outAmount": "1523456",
			"feeAmount": "2500",
			"feeMint": "` + solMint + `"
		},
		"percent": 100
	}],
	"contextSlot": 295000000,
	"timeTaken": 0.012
}`

const swapInstructionsFixture = `{
	"computeBudgetInstructions": [
		{"programId": "` + computeBudgetProgram + `", "accounts": [], "data": "AsBcFQA="}
	],
	"setupInstructions": [],
	"swapInstruction": {
		"programId": "` + jupProgram + `",
		"accounts": [
			{"pubkey": "` + tokenProgram + `", "isSigner": false, "isWritable": false},
			{"pubkey": "` + usdcMint + `", "isSigner": true, "isWritable": false},
			{"pubkey": "` + solMint + `", "isSigner": false, "isWritable": true},
			{"pubkey": "` + systemProgram + `", "isSigner": true, "isWritable": true}
		],
		"data": "AQID"
	},
	"cleanupInstruction": null,
	"addressLookupTableAddresses": ["` + raydiumAmm + `", "` + tokenProgram + `"],
	"prioritizationFeeLamports": 5000,
	"computeUnitLimit": 1400000
}`

func mustKey(s string) solana.PublicKey {
	return solana.MustPublicKeyFromBase58(s)
}
