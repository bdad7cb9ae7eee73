package recognition

// Built-in vocabulary.  These lists are always loaded, whatever the rules
// document says, so a bare engine still recognises common lab plasmids.

// BackboneProfile lists the selection markers a backbone is known to carry.
type BackboneProfile struct {
	EColi  []string `json:"ecoli,omitempty"`
	Mammal []string `json:"mammal,omitempty"`
}

// Empty reports whether the profile carries no marker.
func (p BackboneProfile) Empty() bool {
	return len(p.EColi) == 0 && len(p.Mammal) == 0
}

func (p BackboneProfile) clone() BackboneProfile {
	return BackboneProfile{
		EColi:  append([]string(nil), p.EColi...),
		Mammal: append([]string(nil), p.Mammal...),
	}
}

type curatedBackbone struct {
	name   string
	ecoli  []string
	mammal []string
}

var (
	amp    = []string{"Amp"}
	kan    = []string{"Kan"}
	chl    = []string{"Chl"}
	spec   = []string{"Spec"}
	gent   = []string{"Gent"}
	zeoE   = []string{"Zeocin"}
	ampKan = []string{"Amp", "Kan"}
	ampTet = []string{"Amp", "Tet"}
	ampChl = []string{"Amp", "Chl"}
	chlTet = []string{"Chl", "Tet"}
	ampGen = []string{"Amp", "Gent"}
	kanZeo = []string{"Kan", "Zeocin"}

	puro  = []string{"Puro"}
	neo   = []string{"Neo"}
	hygro = []string{"Hygro"}
	blast = []string{"Blast"}
	zeoM  = []string{"Zeocin"}
)

// curatedBackbones is the backbone table.  Names are matched exactly when
// looking up a profile and case-insensitively when scanning filenames.
var curatedBackbones = []curatedBackbone{
	// Mammalian expression
	{"pcDNA3.1", amp, neo},
	{"pcDNA3.1(+)", amp, neo},
	{"pcDNA3.1(-)", amp, neo},
	{"pcDNA3", amp, neo},
	{"pcDNA3.1/Hygro", amp, hygro},
	{"pcDNA3.1/Zeo", amp, zeoM},
	{"pcDNA3.1-V5-His", amp, neo},
	{"pcDNA4/TO", amp, zeoM},
	{"pcDNA5/FRT", amp, hygro},
	{"pcDNA5/FRT/TO", amp, hygro},
	{"pcDNA6/TR", amp, blast},
	{"pCI-neo", amp, neo},
	{"pCI", amp, nil},
	{"pSI", amp, nil},
	{"pCAGGS", amp, nil},
	{"pCAG", amp, nil},
	{"pCAG-GFP", amp, nil},
	{"pCMV5", amp, nil},
	{"pCMV-HA", amp, nil},
	{"pCMV-Myc", amp, nil},
	{"pCMV-Tag2B", kan, neo},
	{"pCMV-Tag4A", kan, neo},
	{"pCMV6-Entry", kan, neo},
	{"pCMV6-XL5", amp, nil},
	{"pCMV-SPORT6", amp, nil},
	{"p3xFLAG-CMV-10", amp, nil},
	{"p3xFLAG-CMV-14", amp, nil},
	{"pFLAG-CMV-2", amp, nil},
	{"pEF-BOS", amp, nil},
	{"pEF6/V5-His", amp, blast},
	{"pEF1/myc-His", amp, neo},
	{"pEBG", amp, nil},
	{"pRK5", amp, nil},
	{"pRK7", amp, nil},
	{"pXJ40", amp, nil},
	{"pSG5", amp, nil},
	{"pEGFP-N1", kan, neo},
	{"pEGFP-N2", kan, neo},
	{"pEGFP-N3", kan, neo},
	{"pEGFP-C1", kan, neo},
	{"pEGFP-C2", kan, neo},
	{"pEGFP-C3", kan, neo},
	{"pEYFP-N1", kan, neo},
	{"pECFP-N1", kan, neo},
	{"pmCherry-N1", kan, neo},
	{"pmCherry-C1", kan, neo},
	{"pDsRed-Express-N1", kan, neo},
	{"pAcGFP1-N1", kan, neo},
	{"pIRES2-EGFP", kan, neo},
	{"pIRESneo3", amp, neo},
	{"pIRESpuro3", amp, puro},
	{"pTRE-Tight", amp, nil},
	{"pTRE3G", amp, nil},
	{"pTRE2hyg", amp, hygro},
	{"pTet-On Advanced", amp, neo},
	{"pTet-Off", amp, neo},
	{"pOG44", amp, nil},

	// Reporters
	{"pGL3-Basic", amp, nil},
	{"pGL3-Promoter", amp, nil},
	{"pGL3-Control", amp, nil},
	{"pGL4.10", amp, nil},
	{"pGL4.17", amp, neo},
	{"pGL4.20", amp, puro},
	{"pGL4.32", amp, hygro},
	{"pGL4.74", amp, nil},
	{"pmirGLO", amp, nil},
	{"psiCHECK-2", amp, nil},
	{"pRL-TK", amp, nil},
	{"pRL-SV40", amp, nil},
	{"pRL-CMV", amp, nil},
	{"pNL1.1", amp, nil},

	// Lentiviral transfer, packaging and envelope
	{"pLKO.1", amp, puro},
	{"pLKO.1-puro", amp, puro},
	{"pLKO.1-blast", amp, blast},
	{"pLKO.1-hygro", amp, hygro},
	{"pLKO.1-neo", amp, neo},
	{"pLKO.5", amp, puro},
	{"Tet-pLKO-puro", amp, puro},
	{"pLKO-Tet-On", amp, puro},
	{"lentiCRISPRv2", amp, puro},
	{"lentiCRISPR v2", amp, puro},
	{"lentiGuide-Puro", amp, puro},
	{"lentiCas9-Blast", amp, blast},
	{"lentiSAMv2", amp, blast},
	{"pLVX-Puro", amp, puro},
	{"pLVX-IRES-Puro", amp, puro},
	{"pLVX-IRES-Neo", amp, neo},
	{"pLVX-IRES-Hyg", amp, hygro},
	{"pLVX-EF1a-IRES-Puro", amp, puro},
	{"pLVX-TetOne", amp, nil},
	{"pLVX-TetOne-Puro", amp, puro},
	{"pLVX-Tight-Puro", amp, puro},
	{"pLVX-shRNA1", amp, puro},
	{"pLVX-shRNA2", amp, nil},
	{"pLVX", amp, nil},
	{"pLenti6/V5-DEST", amp, blast},
	{"pLenti6.3", amp, blast},
	{"pLenti-CMV-GFP-Puro", amp, puro},
	{"pLenti-puro", amp, puro},
	{"pLenti CMV Puro DEST", amp, puro},
	{"pLJM1", amp, puro},
	{"pLJM1-EGFP", amp, puro},
	{"pLX304", amp, blast},
	{"pLX317", amp, puro},
	{"pLEX_307", amp, puro},
	{"pCDH-CMV-MCS-EF1-Puro", amp, puro},
	{"pCDH-CMV-MCS-EF1-Neo", amp, neo},
	{"pCDH-CMV-MCS-EF1-copGFP", amp, nil},
	{"pCDH-EF1-MCS-IRES-Puro", amp, puro},
	{"pCDH-CMV-MCS-EF1-GFP-T2A-Puro", amp, puro},
	{"pCDH", amp, nil},
	{"pLV-EF1a-IRES-Puro", amp, puro},
	{"pLV-EF1a-IRES-Neo", amp, neo},
	{"pLV-EF1a-IRES-Blast", amp, blast},
	{"pLV-EF1a-IRES-Hygro", amp, hygro},
	{"pCW57.1", amp, puro},
	{"pInducer10", amp, puro},
	{"pInducer20", kan, neo},
	{"pInducer21", kan, nil},
	{"pTRIPZ", amp, puro},
	{"pGIPZ", amp, puro},
	{"pLL3.7", amp, nil},
	{"pSico", amp, nil},
	{"pSicoR", amp, nil},
	{"pLVTHM", amp, nil},
	{"FUGW", amp, nil},
	{"FUW-M2rtTA", amp, nil},
	{"FUW-tetO", amp, nil},
	{"pWPI", amp, nil},
	{"pWPXL", amp, nil},
	{"pWPT", amp, nil},
	{"pHIV-EGFP", amp, nil},
	{"psPAX2", amp, nil},
	{"pMD2.G", amp, nil},
	{"pMDLg/pRRE", amp, nil},
	{"pRSV-Rev", amp, nil},
	{"pCMV-dR8.2", amp, nil},
	{"pCMV-dR8.91", amp, nil},
	{"pCMV-VSV-G", amp, nil},

	// Retroviral
	{"pMSCV-puro", amp, puro},
	{"pMSCV-neo", amp, neo},
	{"pMSCV-hygro", amp, hygro},
	{"pMSCV-IRES-GFP", amp, nil},
	{"pMIG", amp, nil},
	{"pBABE-puro", amp, puro},
	{"pBABE-neo", amp, neo},
	{"pBABE-hygro", amp, hygro},
	{"pBABE-zeo", amp, zeoM},
	{"pMXs-IRES-Puro", amp, puro},
	{"pMXs-puro", amp, puro},
	{"pMXs-IRES-Blasticidin", amp, blast},
	{"pMX", amp, nil},
	{"pQCXIP", amp, puro},
	{"pQCXIN", amp, neo},
	{"pQCXIH", amp, hygro},
	{"pLNCX2", amp, neo},
	{"pLXSN", amp, neo},
	{"pRetroX-Tight-Pur", amp, puro},
	{"pSIREN-RetroQ", amp, puro},
	{"pMKO.1-puro", amp, puro},
	{"pSUPER", amp, nil},
	{"pSUPER.retro.puro", amp, puro},
	{"pSilencer 4.1-CMV puro", amp, puro},
	{"pGPU6/GFP/Neo", amp, neo},
	{"pRNAT-U6.1/Neo", amp, neo},
	{"pGenesil-1", kan, nil},

	// Genome editing
	{"pX330", amp, nil},
	{"pX330A", amp, nil},
	{"pX335", amp, nil},
	{"pX458", amp, nil},
	{"pX459", amp, puro},
	{"pX461", amp, nil},
	{"pX462", amp, puro},
	{"pX552", amp, nil},
	{"pX601", amp, nil},
	{"pSpCas9(BB)-2A-GFP", amp, nil},
	{"pSpCas9(BB)-2A-Puro", amp, puro},
	{"pDR274", kan, nil},
	{"pMLM3613", kan, nil},
	{"pCMV-hyPBase", amp, nil},

	// AAV and adenovirus
	{"pAAV-MCS", amp, nil},
	{"pAAV-CMV", amp, nil},
	{"pAAV-CAG-GFP", amp, nil},
	{"pAAV-hSyn-EGFP", amp, nil},
	{"pAAV-EF1a-DIO", amp, nil},
	{"pAAV2/1", amp, nil},
	{"pAAV2/9", amp, nil},
	{"pAAV-RC", amp, nil},
	{"pHelper", amp, nil},
	{"pAdDeltaF6", amp, nil},
	{"pAdTrack-CMV", kan, nil},
	{"pAdEasy-1", amp, nil},
	{"pShuttle-CMV", kan, nil},

	// Bacterial expression
	{"pET-28a(+)", kan, nil},
	{"pET-28a", kan, nil},
	{"pET28a", kan, nil},
	{"pET-21a(+)", amp, nil},
	{"pET-21a", amp, nil},
	{"pET-22b(+)", amp, nil},
	{"pET-15b", amp, nil},
	{"pET-32a(+)", amp, nil},
	{"pET-30a(+)", kan, nil},
	{"pET-24a(+)", kan, nil},
	{"pET-11a", amp, nil},
	{"pET-19b", amp, nil},
	{"pET-41a", kan, nil},
	{"pET-SUMO", kan, nil},
	{"pETDuet-1", amp, nil},
	{"pACYCDuet-1", chl, nil},
	{"pCDFDuet-1", spec, nil},
	{"pRSFDuet-1", kan, nil},
	{"pCOLADuet-1", kan, nil},
	{"pGEX-4T-1", amp, nil},
	{"pGEX-4T-2", amp, nil},
	{"pGEX-6P-1", amp, nil},
	{"pGEX-5X-1", amp, nil},
	{"pGEX-2T", amp, nil},
	{"pMAL-c2X", amp, nil},
	{"pMAL-c5X", amp, nil},
	{"pMAL-p2X", amp, nil},
	{"pBAD/His A", amp, nil},
	{"pBAD24", amp, nil},
	{"pBAD18", amp, nil},
	{"pBAD33", chl, nil},
	{"pQE-30", amp, nil},
	{"pQE-60", amp, nil},
	{"pQE-80L", amp, nil},
	{"pTrcHis A", amp, nil},
	{"pTrc99a", amp, nil},
	{"pCold I", amp, nil},
	{"pCold TF", amp, nil},
	{"pRSET A", amp, nil},
	{"pKD46", amp, nil},
	{"pKD3", ampChl, nil},
	{"pKD4", ampKan, nil},
	{"pCP20", ampChl, nil},
	{"pSB1C3", chl, nil},
	{"pSB1A3", amp, nil},
	{"pSB1K3", kan, nil},

	// Cloning
	{"pUC19", amp, nil},
	{"pUC18", amp, nil},
	{"pUC57", amp, nil},
	{"pUC57-Kan", kan, nil},
	{"pBluescript II SK(+)", amp, nil},
	{"pBluescript II KS(+)", amp, nil},
	{"pBSK", amp, nil},
	{"pGEM-T Easy", amp, nil},
	{"pGEM-T", amp, nil},
	{"pGEM-3Zf(+)", amp, nil},
	{"pCR2.1-TOPO", ampKan, nil},
	{"pCR-Blunt II-TOPO", kanZeo, nil},
	{"pCR4-TOPO", ampKan, nil},
	{"pJET1.2/blunt", amp, nil},
	{"pMD18-T", amp, nil},
	{"pMD19-T", amp, nil},
	{"pMD20-T", amp, nil},
	{"pEASY-Blunt", ampKan, nil},
	{"pEASY-T1", ampKan, nil},
	{"pBR322", ampTet, nil},
	{"pACYC184", chlTet, nil},
	{"pCC1FOS", chl, nil},
	{"pENTR/D-TOPO", kan, nil},
	{"pENTR1A", kan, nil},
	{"pENTR221", kan, nil},
	{"pDONR221", kan, nil},
	{"pDONR207", gent, nil},
	{"pDONR223", spec, nil},
	{"pDONR/Zeo", zeoE, nil},

	// Yeast, plant and insect
	{"pYES2", amp, nil},
	{"pESC-URA", amp, nil},
	{"pRS415", amp, nil},
	{"pRS416", amp, nil},
	{"pRS426", amp, nil},
	{"pGADT7", amp, nil},
	{"pGBKT7", kan, nil},
	{"pGBT9", amp, nil},
	{"pGAD424", amp, nil},
	{"pPICZ A", zeoE, nil},
	{"pPIC9K", ampKan, nil},
	{"pCAMBIA1300", kan, nil},
	{"pCAMBIA1301", kan, nil},
	{"pCAMBIA1302", kan, nil},
	{"pCAMBIA2300", kan, nil},
	{"pCAMBIA3301", kan, nil},
	{"pBI121", kan, nil},
	{"pBIN19", kan, nil},
	{"pGreenII 0800-LUC", kan, nil},
	{"pMDC32", kan, nil},
	{"pK7WG2D", spec, nil},
	{"pH7WG2D", spec, nil},
	{"pB7WG2D", spec, nil},
	{"pEarleyGate 100", kan, nil},
	{"pFastBac1", ampGen, nil},
	{"pFastBac HT A", ampGen, nil},
	{"pFastBac Dual", ampGen, nil},
	{"pIZ/V5-His", zeoE, nil},
	{"pAc5.1", amp, nil},
	{"pMT/V5-His", amp, nil},
	{"pUAST", amp, nil},
	{"pUASTattB", amp, nil},
	// Lentiviral families and transfer plasmids
	{"pLenti", amp, nil},
	{"pLV", amp, nil},
	{"pLKO", amp, puro},
	{"pCDH-CMV-MCS-EF1-Hygro", amp, hygro},
	{"pCDH-CMV-MCS-EF1-RFP", amp, nil},
	{"pCDH-EF1-MCS-T2A-copGFP", amp, nil},
	{"pCDH-CMV-MCS-EF1-Puro-copGFP", amp, puro},
	{"pCDH-EF1-MCS-IRES-Neo", amp, neo},
	{"pCDH-EF1a-MCS-IRES-Puro", amp, puro},
	{"pCDH-MSCV-MCS-EF1-GFP", amp, nil},
	{"pLenti-CMV-Blast", amp, blast},
	{"pLenti-CMV-Hygro", amp, hygro},
	{"pLenti-CMV-Neo", amp, neo},
	{"pLenti-CMV-Puro DEST", amp, puro},
	{"pLenti-CMV-Blast DEST", amp, blast},
	{"pLenti-CMV-Hygro DEST", amp, hygro},
	{"pLenti-CMV-Neo DEST", amp, neo},
	{"pLenti-CMVtight-Puro-DEST", amp, puro},
	{"pLenti-PGK-Puro DEST", amp, puro},
	{"pLenti-PGK-Blast DEST", amp, blast},
	{"pLenti-PGK-Hygro DEST", amp, hygro},
	{"pLenti-PGK-Neo DEST", amp, neo},
	{"pLenti-CMV-rtTA3", amp, nil},
	{"pLenti-CMV-rtTA3 Blast", amp, blast},
	{"pLenti-GIII-CMV", amp, puro},
	{"pLenti-GIII-EF1a", amp, puro},
	{"pLenti-C-Myc-DDK", amp, puro},
	{"pLenti-C-mGFP", amp, puro},
	{"pLenti-C-Myc-DDK-IRES-Puro", amp, puro},
	{"pLenti-C-mGFP-P2A-Puro", amp, puro},
	{"pLenti6/TR", amp, blast},
	{"pLenti6/UbC/V5-DEST", amp, blast},
	{"pLenti6.3/V5-DEST", amp, blast},
	{"pLenti6.3/TO/V5-DEST", amp, blast},
	{"pLenti4/TO/V5-DEST", amp, zeoM},
	{"pLenti7.3/V5-DEST", amp, nil},
	{"pLenti-Blast", amp, blast},
	{"pLenti-Hygro", amp, hygro},
	{"pLenti-EF1a", amp, nil},
	{"pLenti-CAG", amp, nil},
	{"pLenti-III-EF1a", amp, puro},
	{"pLenti-sgRNA", amp, puro},
	{"pLentiGuide", amp, puro},
	{"pLentiCRISPR", amp, puro},
	{"lentiCRISPR v1", amp, puro},
	{"lentiCas9-EGFP", amp, nil},
	{"lentiGuide-Hygro", amp, hygro},
	{"lentiGuide-Blast", amp, blast},
	{"lentiMPH v2", amp, hygro},
	{"lentiSAM v2", amp, blast},
	{"lentiArray Cas9", amp, blast},
	{"lentiCRISPRv2-Blast", amp, blast},
	{"lentiCRISPRv2-Hygro", amp, hygro},
	{"lentiCRISPRv2-Neo", amp, neo},
	{"lentiCRISPRv2-mCherry", amp, nil},
	{"lentiCRISPRv2GFP", amp, nil},
	{"lentiGuide-Puro-P2A-EGFP", amp, puro},
	{"lentiCas9-Puro", amp, puro},
	{"pLV-EF1a-IRES-Zeo", amp, zeoM},
	{"pLV-EF1a-MCS-IRES-Puro", amp, puro},
	{"pLV-CMV-Puro", amp, puro},
	{"pLV-CMV-EGFP", amp, nil},
	{"pLV-EGFP", amp, nil},
	{"pLV-mCherry", amp, nil},
	{"pLV-Puro", amp, puro},
	{"pLV-Neo", amp, neo},
	{"pLV-Hygro", amp, hygro},
	{"pLV-Blast", amp, blast},
	{"pLV-U6", amp, puro},
	{"pLV-H1", amp, puro},
	{"pLV-EF1a", amp, nil},
	{"pLV-CAG", amp, nil},
	{"pLV-PGK", amp, nil},
	{"pLVX-AcGFP1-N1", amp, puro},
	{"pLVX-AcGFP1-C1", amp, puro},
	{"pLVX-mCherry-N1", amp, puro},
	{"pLVX-mCherry-C1", amp, puro},
	{"pLVX-DsRed-Monomer-N1", amp, puro},
	{"pLVX-ZsGreen1-N1", amp, puro},
	{"pLVX-IRES-ZsGreen1", amp, nil},
	{"pLVX-IRES-mCherry", amp, nil},
	{"pLVX-IRES-tdTomato", amp, nil},
	{"pLVX-EF1a-IRES-mCherry", amp, nil},
	{"pLVX-EF1a-IRES-ZsGreen1", amp, nil},
	{"pLVX-EF1a-AcGFP1-N1", amp, puro},
	{"pLVX-Tet-On Advanced", amp, neo},
	{"pLVX-Tet3G", amp, neo},
	{"pLVX-TRE3G", amp, puro},
	{"pLVX-TRE3G-mCherry", amp, puro},
	{"pLVX-TRE3G-ZsGreen1", amp, puro},
	{"pLVX-TRE3G-IRES", amp, puro},
	{"pLVX-Tight-Puro-Luc", amp, puro},
	{"pLVX-TetOne-Puro-Luc", amp, puro},
	{"pLVX-Hyg", amp, hygro},
	{"pLVX-Neo", amp, neo},
	{"pLVX-Blast", amp, blast},
	{"pLVX-EF1a-IRES-Neo", amp, neo},
	{"pLVX-EF1a-IRES-Hyg", amp, hygro},
	{"pLVX-EF1a-IRES-Blast", amp, blast},
	{"pLVX-CMV-Puro", amp, puro},
	{"pLVX-CMV-IRES-Puro", amp, puro},
	{"pLVX-IRES-Blast", amp, blast},
	{"pLVX-Puro-GFP", amp, puro},
	{"pLJM1-Empty", amp, puro},
	{"pLJM1-mCherry", amp, puro},
	{"pLJC5", amp, puro},
	{"pLJC6", amp, blast},
	{"pLX301", amp, puro},
	{"pLX302", amp, puro},
	{"pLX303", amp, blast},
	{"pLX304-Blast", amp, blast},
	{"pLX307", amp, puro},
	{"pLX311", amp, blast},
	{"pLX313", amp, hygro},
	{"pLX_317", amp, puro},
	{"pLEX_305", amp, puro},
	{"pLEX_306", amp, puro},
	{"pLEX_TRC206", amp, nil},
	// Retroviral
	{"pRetroX", amp, nil},
	{"pRetroX-IRES-ZsGreen1", amp, nil},
	{"pRetroX-IRES-DsRedExpress", amp, nil},
	{"pRetroX-Tet-On Advanced", amp, neo},
	{"pRetroX-Tet3G", amp, neo},
	{"pRetroX-TRE3G", amp, puro},
	{"pRetroX-TRE3G-mCherry", amp, puro},
	{"pRetroX-Tight-Pur-Luc", amp, puro},
	{"pRetroX-PTuner", amp, puro},
	{"pRetroX-AcGFP1-N1", amp, puro},
	{"pRetroX-DsRed-Monomer-N1", amp, puro},
	{"pRetroX-shRNA", amp, puro},
	{"pRetroX-CMV", amp, puro},
	{"pRetroX-Puro", amp, puro},
	{"pRetroX-Neo", amp, neo},
	{"pRetroX-Hygro", amp, hygro},
	{"pRetroQ-AcGFP1-N1", amp, puro},
	{"pRetroQ-DsRed-Monomer-C1", amp, puro},
	{"pRetro-Super", amp, puro},
	{"pRetroSuper", amp, puro},
	{"pSUPER.retro.neo+GFP", amp, neo},
	{"pSUPER.retro.neo", amp, neo},
	{"pSUPER.neo", amp, neo},
	{"pSUPER.puro", amp, puro},
	{"pSUPER.neo+GFP", amp, neo},
	{"pSUPER.gfp+neo", amp, neo},
	{"pMSCV", amp, nil},
	{"pMSCV-PIG", amp, puro},
	{"pMSCV-IRES-mCherry", amp, nil},
	{"pMSCV-IRES-YFP", amp, nil},
	{"pMSCV-IRES-Thy1.1", amp, nil},
	{"pMSCV-Blasticidin", amp, blast},
	{"pMSCV-LTRmiR30-PIG", amp, puro},
	{"pMSCVpuro", amp, puro},
	{"pMSCVneo", amp, neo},
	{"pMSCVhyg", amp, hygro},
	{"MSCV-IRES-GFP", amp, nil},
	{"MSCV-IRES-Thy1.1", amp, nil},
	{"MigR1", amp, nil},
	{"pMIG-w", amp, nil},
	{"pMIGR1", amp, nil},
	{"pBABE", amp, nil},
	{"pBABE-puro-GFP", amp, puro},
	{"pBABE-puro-ER", amp, puro},
	{"pBABE-blast", amp, blast},
	{"pBABE-hygro-hTERT", amp, hygro},
	{"pBABE-neo-largeTcDNA", amp, neo},
	{"pBABE-GFP", amp, puro},
	{"pBABEpuro", amp, puro},
	{"pMXs", amp, nil},
	{"pMXs-IRES-GFP", amp, nil},
	{"pMXs-IRES-Neo", amp, neo},
	{"pMXs-neo", amp, neo},
	{"pMXs-IP", amp, puro},
	{"pMXs-IG", amp, nil},
	{"pMXs-GW", amp, nil},
	{"pMX-GFP", amp, nil},
	{"pMXs-Oct3/4", amp, nil},
	{"pMXs-Sox2", amp, nil},
	// AAV
	{"pAAV", amp, nil},
	{"pAAV-CAG", amp, nil},
	{"pAAV-CAG-tdTomato", amp, nil},
	{"pAAV-CAG-mCherry", amp, nil},
	{"pAAV-CAG-FLEX-EGFP", amp, nil},
	{"pAAV-CAG-ChR2-GFP", amp, nil},
	{"pAAV-CMV-GFP", amp, nil},
	{"pAAV-CMV-MCS", amp, nil},
	{"pAAV-IRES-hrGFP", amp, nil},
	{"pAAV-IRES-GFP", amp, nil},
	{"pAAV-LacZ", amp, nil},
	{"pAAV-hrGFP", amp, nil},
	{"pAAV-hSyn", amp, nil},
	{"pAAV-hSyn-mCherry", amp, nil},
	{"pAAV-hSyn-GCaMP6s", amp, nil},
	{"pAAV-hSyn-GCaMP6f", amp, nil},
	{"pAAV-hSyn-GCaMP6m", amp, nil},
	{"pAAV-hSyn-jGCaMP7s", amp, nil},
	{"pAAV-hSyn-jGCaMP7f", amp, nil},
	{"pAAV-hSyn-jGCaMP8m", amp, nil},
	{"pAAV-hSyn-DIO-mCherry", amp, nil},
	{"pAAV-hSyn-DIO-EGFP", amp, nil},
	{"pAAV-hSyn-DIO-hM3D(Gq)-mCherry", amp, nil},
	{"pAAV-hSyn-DIO-hM4D(Gi)-mCherry", amp, nil},
	{"pAAV-hSyn-hM3D(Gq)-mCherry", amp, nil},
	{"pAAV-hSyn-hM4D(Gi)-mCherry", amp, nil},
	{"pAAV-hSyn-hChR2(H134R)-EYFP", amp, nil},
	{"pAAV-hSyn-Cre", amp, nil},
	{"pAAV-hSyn-EGFP-Cre", amp, nil},
	{"pAAV-hSyn1-GCaMP6s-P2A-nls-dTomato", amp, nil},
	{"pAAV-CaMKIIa-EGFP", amp, nil},
	{"pAAV-CaMKIIa-mCherry", amp, nil},
	{"pAAV-CaMKIIa-hChR2(H134R)-EYFP", amp, nil},
	{"pAAV-CaMKIIa-hM3D(Gq)-mCherry", amp, nil},
	{"pAAV-CaMKIIa-hM4D(Gi)-mCherry", amp, nil},
	{"pAAV-EF1a-DIO-EYFP", amp, nil},
	{"pAAV-EF1a-DIO-mCherry", amp, nil},
	{"pAAV-EF1a-DIO-hChR2(H134R)-EYFP", amp, nil},
	{"pAAV-EF1a-fDIO-mCherry", amp, nil},
	{"pAAV-EF1a-double floxed-hChR2(H134R)-EYFP-WPRE-HGHpA", amp, nil},
	{"pAAV-EF1a-mCherry", amp, nil},
	{"pAAV-EF1a-Cre", amp, nil},
	{"pAAV-FLEX-GFP", amp, nil},
	{"pAAV-FLEX-tdTomato", amp, nil},
	{"pAAV-FLEX-ArchT-GFP", amp, nil},
	{"pAAV-FLEX-taCasp3-TEVp", amp, nil},
	{"pAAV-GFAP-EGFP", amp, nil},
	{"pAAV-GfaABC1D-Lck-GCaMP6f", amp, nil},
	{"pAAV-TBG-EGFP", amp, nil},
	{"pAAV.TBG.PI.Cre.rBG", amp, nil},
	{"pAAV.CMV.PI.EGFP.WPRE.bGH", amp, nil},
	{"pAAV.CAG.GFP", amp, nil},
	{"pAAV.Syn.GCaMP6s.WPRE.SV40", amp, nil},
	{"pAAV.Syn.GCaMP6f.WPRE.SV40", amp, nil},
	{"pAAV.CamKII.GCaMP6s.WPRE.SV40", amp, nil},
	{"pAAV.GFAP.eGFP.WPRE.hGH", amp, nil},
	{"pAAV-U6-sgRNA", amp, nil},
	{"pAAV-U6-sgRNA-CMV-GFP", amp, nil},
	{"pAAV-U6-shRNA", amp, nil},
	{"pAAV-SaCas9", amp, nil},
	// Adenoviral
	{"pAdTrack", kan, nil},
	{"pAdTrack-CMV-GFP", kan, nil},
	{"pAdEasy-XL", amp, nil},
	{"pAdeno-X", amp, nil},
	{"pAdeno-X ZsGreen1", amp, nil},
	{"pShuttle", kan, nil},
	{"pShuttle2", kan, nil},
	{"pShuttle-IRES-hrGFP", kan, nil},
	{"pAd/CMV/V5-DEST", amp, nil},
	{"pAd/PL-DEST", amp, nil},
	{"pAd/BLOCK-iT-DEST", amp, nil},
	{"pENTR/U6", kan, nil},
	// CRISPR and transposon
	{"pX330-U6-Chimeric_BB-CBh-hSpCas9", amp, nil},
	{"pX458-sgRNA", amp, nil},
	{"pX459 V2.0", amp, puro},
	{"pX260", amp, puro},
	{"pX333", amp, nil},
	{"pX334", amp, nil},
	{"pX600", amp, nil},
	{"pX602", amp, nil},
	{"pX330S-2", amp, nil},
	{"pX330S-3", amp, nil},
	{"pX330S-4", amp, nil},
	{"pX330-Cas9-D10A", amp, nil},
	{"pSpCas9(BB)-2A-Puro V2.0", amp, puro},
	{"pSpCas9n(BB)-2A-GFP", amp, nil},
	{"pSpCas9n(BB)-2A-Puro", amp, puro},
	{"pSpCas9(BB)", amp, nil},
	{"pCas9", chl, nil},
	{"pCas9-GFP", amp, nil},
	{"pCas9_GFP", amp, nil},
	{"pCAG-Cas9", amp, nil},
	{"pCAG-eCas9-GFP-U6-gRNA", amp, nil},
	{"pU6-sgRNA", amp, nil},
	{"pU6-(BbsI)_CBh-Cas9-T2A-mCherry", amp, nil},
	{"pU6-sgRNA EF1Alpha-puro-T2A-BFP", amp, puro},
	{"pMLM3636", amp, nil},
	{"pDR274-sgRNA", kan, nil},
	{"pCMV-T7-SpCas9", amp, nil},
	{"pCMV-BE3", amp, nil},
	{"pCMV-BE4max", amp, nil},
	{"pCMV-ABEmax", amp, nil},
	{"pCMV-PE2", amp, nil},
	{"pU6-pegRNA-GG-acceptor", amp, nil},
	{"pCMV_AncBE4max", amp, nil},
	{"pCMV_ABE7.10", amp, nil},
	{"pY010", amp, nil},
	{"pY016", amp, nil},
	{"pSQT1313", amp, nil},
	{"pLentiCas9-T2A-GFP", amp, nil},
	{"pCRISPomyces-2", kan, nil},
	{"pCRISPR", kan, nil},
	// Mammalian expression and reporters
	{"pcDNA3.1/myc-His A", amp, neo},
	{"pcDNA3.1/V5-His A", amp, neo},
	{"pcDNA3.1/V5-His-TOPO", amp, neo},
	{"pcDNA3.1/His A", amp, neo},
	{"pcDNA3.1/Zeo(+)", amp, zeoM},
	{"pcDNA3.1/Hygro(+)", amp, hygro},
	{"pcDNA3.1/nV5-DEST", amp, neo},
	{"pcDNA3.1/CT-GFP-TOPO", amp, neo},
	{"pcDNA3.1/NT-GFP-TOPO", amp, neo},
	{"pcDNA3-HA", amp, neo},
	{"pcDNA3-Flag", amp, neo},
	{"pcDNA3-myc", amp, neo},
	{"pcDNA3-EGFP", amp, neo},
	{"pcDNA3-mRFP", amp, neo},
	{"pcDNA3.3-TOPO", amp, neo},
	{"pcDNA3.4-TOPO", amp, neo},
	{"pcDNA4/myc-His A", amp, zeoM},
	{"pcDNA4/HisMax", amp, zeoM},
	{"pcDNA4/TO/myc-His", amp, zeoM},
	{"pcDNA5/TO", amp, hygro},
	{"pcDNA5/FRT/TO-TOPO", amp, hygro},
	{"pcDNA6/myc-His", amp, blast},
	{"pcDNA6.2/EmGFP-Bsd/V5-DEST", amp, blast},
	{"pcDNA6.2-GW/EmGFP-miR", spec, blast},
	{"pcDNA-DEST40", amp, neo},
	{"pcDNA-DEST47", amp, neo},
	{"pcDNA-DEST53", amp, neo},
	{"pcDNA1", amp, nil},
	{"pcDNA1.1", amp, nil},
	{"pcDNA2.1", amp, nil},
	{"pcDNA4/V5-His", amp, zeoM},
	{"pcDNA3.1-C-eGFP", amp, neo},
	{"pCMV-3Tag-1A", kan, neo},
	{"pCMV-3Tag-4A", kan, neo},
	{"pCMV-Tag1", kan, neo},
	{"pCMV-Tag3B", kan, neo},
	{"pCMV-Tag5A", kan, neo},
	{"pCMV-HA-N", amp, neo},
	{"pCMV-Myc-N", amp, neo},
	{"pCMV-Myc-C", amp, neo},
	{"pCMV-HA-C", amp, neo},
	{"pCMV-FLAG", amp, nil},
	{"pCMV-SPORT", amp, nil},
	{"pCMV-Script", kan, neo},
	{"pCMV6-AC", amp, neo},
	{"pCMV6-AC-GFP", amp, neo},
	{"pCMV6-AC-Myc-DDK", amp, neo},
	{"pCMV6-Entry-Myc-DDK", kan, neo},
	{"pCMV6-XL4", amp, nil},
	{"pCMV6-XL6", amp, nil},
	// Bacterial expression and cloning
	{"pET-3a", amp, nil},
	{"pET-3d", amp, nil},
	{"pET-9a", kan, nil},
	{"pET-12a", amp, nil},
	{"pET-14b", amp, nil},
	{"pET-16b", amp, nil},
	{"pET-17b", amp, nil},
	{"pET-20b(+)", amp, nil},
	{"pET-21b(+)", amp, nil},
	{"pET-21d(+)", amp, nil},
	{"pET-22b", amp, nil},
	{"pET-23a(+)", amp, nil},
	{"pET-23b(+)", amp, nil},
	{"pET-24b(+)", kan, nil},
	{"pET-24d(+)", kan, nil},
	{"pET-26b(+)", kan, nil},
	{"pET-28b(+)", kan, nil},
	{"pET-28c(+)", kan, nil},
	{"pET-28a-SUMO", kan, nil},
	{"pET-29a(+)", kan, nil},
	{"pET-30b(+)", kan, nil},
	{"pET-32b(+)", amp, nil},
	{"pET-39b(+)", kan, nil},
	{"pET-40b(+)", kan, nil},
	{"pET-41b(+)", kan, nil},
	{"pET-43.1a(+)", amp, nil},
	{"pET-44a(+)", amp, nil},
	{"pET-45b(+)", amp, nil},
	{"pET-46 Ek/LIC", amp, nil},
	{"pET-47b(+)", kan, nil},
	{"pET-51b(+)", amp, nil},
	{"pET-52b(+)", amp, nil},
	{"pET-His6-TEV-LIC", kan, nil},
	{"pET-His6-MBP-TEV-LIC", kan, nil},
	{"pET-His6-GST-TEV-LIC", kan, nil},
	{"pET28", kan, nil},
	{"pET21", amp, nil},
	{"pET22b", amp, nil},
	{"pET30a", kan, nil},
	{"pET32a", amp, nil},
	// Gateway and Golden Gate
	{"pENTR2B", kan, nil},
	{"pENTR3C", kan, nil},
	{"pENTR4", kan, nil},
	{"pENTR11", kan, nil},
	{"pENTR/SD/D-TOPO", kan, nil},
	{"pENTR/TEV/D-TOPO", kan, nil},
	{"pENTR-TOPO", kan, nil},
	{"pENTR223", spec, nil},
	{"pENTR223.1", spec, nil},
	{"pENTR/D", kan, nil},
	{"pDONR201", kan, nil},
	{"pDONR222", kan, nil},
	{"pDONR-P4-P1R", kan, nil},
	{"pDONR-P2R-P3", kan, nil},
	// Yeast
	{"pRS313", amp, nil},
	{"pRS314", amp, nil},
	{"pRS315", amp, nil},
	{"pRS316", amp, nil},
	{"pRS303", amp, nil},
	{"pRS304", amp, nil},
	{"pRS305", amp, nil},
	{"pRS306", amp, nil},
	{"pRS413", amp, nil},
	{"pRS414", amp, nil},
	{"pRS423", amp, nil},
	{"pRS424", amp, nil},
	{"pRS425", amp, nil},
	{"pRS403", amp, nil},
	{"pRS404", amp, nil},
	// Insect, plant and other hosts
	{"pFastBac HT B", ampGen, nil},
	{"pFastBac HT C", ampGen, nil},
	{"pFastBac/NT-TOPO", ampGen, nil},
	{"pFastBac/CT-TOPO", ampGen, nil},
	{"pFastBacDual", ampGen, nil},
	{"pFastBac-GST", ampGen, nil},
	{"pFastBac-His", ampGen, nil},
	{"pFastBac-MBP", ampGen, nil},
	{"pFBDM", ampGen, nil},
	{"pACEBac1", gent, nil},
}

// curatedGenes are gene symbols commonly cloned into lab plasmids.  MYC is
// left out because it collides with the Myc epitope tag.
var curatedGenes = []string{
	"TP53", "KRAS", "NRAS", "HRAS", "BRAF", "EGFR", "ERBB2", "ERBB3", "MYCN", "PTEN",
	"AKT1", "AKT2", "PIK3CA", "MTOR", "GAPDH", "ACTB", "TUBB", "VIM", "CDH1", "CDH2",
	"SNAI1", "SNAI2", "TWIST1", "ZEB1", "SOX2", "POU5F1", "NANOG", "KLF4", "LIN28A", "CDK4",
	"CDK6", "CDKN1A", "CDKN2A", "RB1", "BCL2", "BAX", "BAK1", "CASP3", "CASP8", "CASP9",
	"PARP1", "ATM", "ATR", "BRCA1", "BRCA2", "CHEK1", "CHEK2", "MDM2", "YAP1", "WWTR1",
	"TEAD1", "LATS1", "LATS2", "NF2", "STAT1", "STAT3", "JAK1", "JAK2", "NFKB1", "RELA",
	"IKBKB", "TNF", "IL6", "IL1B", "IFNG", "TGFB1", "SMAD2", "SMAD3", "SMAD4", "NOTCH1",
	"HES1", "CTNNB1", "APC", "AXIN2", "LGR5", "WNT3A", "GSK3B", "SHH", "GLI1", "PTCH1",
	"HIF1A", "VHL", "VEGFA", "KDR", "FGFR1", "FGFR2", "FGFR3", "MET", "ALK", "RET",
	"ROS1", "NTRK1", "KIT", "PDGFRA", "FLT3", "IDH1", "IDH2", "DNMT1", "DNMT3A", "TET2",
	"EZH2", "KMT2A", "SETD2", "ARID1A", "SMARCA4", "KEAP1", "NFE2L2", "SQSTM1", "MAP1LC3B", "BECN1",
	"ATG5", "ATG7", "ULK1", "TFEB", "LMNA", "SIRT1", "SIRT3", "PPARGC1A", "PPARG", "CEBPA",
	"FOXO1", "FOXO3", "FOXP3", "GATA1", "GATA3", "RUNX1", "TAL1", "PAX6", "NEUROD1", "NEUROG2",
	"ASCL1", "MAP2", "TUBB3", "SYN1", "OLIG2", "NES", "MAPT", "APP", "PSEN1", "SNCA",
	"LRRK2", "PINK1", "PRKN", "HTT", "SOD1", "TARDBP", "FUS", "CFTR", "DMD", "HBB",
	"INS", "PDX1", "ALB", "AFP", "TTR", "APOE", "LDLR", "PCSK9", "ACE2", "TMPRSS2",
	"CD4", "CD8A", "CD19", "CD3E", "PDCD1", "CD274", "CTLA4", "LAG3", "B2M", "CD47",
	"CXCR4", "CCR5", "ITGB1", "FN1", "COL1A1", "MMP2", "MMP9", "ESR1", "PGR", "CCND1",
	"CCNE1", "E2F1", "AURKA", "PLK1", "MKI67", "PCNA", "TERT", "DICER1", "AGO2", "METTL3",
	"FTO", "YTHDF2", "GPX4", "SLC7A11", "TFRC", "ACSL4", "NLRP3", "GSDMD", "CASP1", "STING1",
	"CGAS", "MAVS", "TLR4", "MYD88", "IRF3", "XIST", "MALAT1", "HOTAIR", "NEAT1",
}

var curatedProteinTags = []string{
	"Flag", "3xFlag", "HA", "3xHA", "Myc", "6xHis", "His", "8xHis", "GST", "MBP",
	"SUMO", "V5", "Strep", "Twin-Strep", "SBP", "Avi", "S-tag", "HaloTag", "SNAP", "CLIP",
	"HiBiT", "Ty1", "Xpress", "ALFA", "OLLAS", "AU1", "Spot", "TurboID", "BioID", "APEX2",
}

var curatedFluorophores = []string{
	"GFP", "EGFP", "sfGFP", "copGFP", "TurboGFP", "AcGFP", "ZsGreen", "mNeonGreen", "mEmerald", "Clover",
	"mClover3", "YFP", "EYFP", "Venus", "mVenus", "Citrine", "CFP", "ECFP", "Cerulean", "mTurquoise2",
	"BFP", "EBFP2", "TagBFP", "mTagBFP2", "RFP", "mRFP", "DsRed", "tdTomato", "mCherry", "mScarlet",
	"mScarlet-I", "mRuby2", "mRuby3", "mKate2", "TagRFP", "TagRFP-T", "mApple", "mOrange2", "mKO2", "iRFP670",
	"iRFP713", "miRFP670", "mPlum", "mNeptune2", "Dendra2", "mEos3.2", "Dronpa", "GCaMP6s", "GCaMP6f", "jRGECO1a",
}

var curatedPromoters = []string{
	"CMV", "CAG", "EF1a", "EF1α", "EFS", "PGK", "hPGK", "mPGK", "SV40", "UbC",
	"U6", "H1", "7SK", "CBh", "CBA", "TRE", "TRE3G", "T7", "SP6", "lac",
	"tac", "trc", "T5", "araBAD", "hSyn", "CaMKIIa", "GFAP", "LTR", "RSV", "TK",
	"SFFV", "TBG", "GAL1", "ADH1", "TEF1", "35S", "UAS", "Actin5C", "MSCV", "CAGGS",
}

var curatedInsertTypes = []string{
	"shRNA", "sgRNA", "gRNA", "siRNA", "miRNA", "cDNA", "ORF", "CDS", "lncRNA", "circRNA",
	"3'UTR", "5'UTR",
}

var curatedFunctions = []string{
	"过表达", "敲低", "敲除", "报告基因", "包装", "包膜", "CRISPR", "CRISPRi", "CRISPRa", "Cas9",
	"dCas9", "nCas9", "Cas12a", "Cas13d", "Cre", "CreERT2", "Flp", "FLPo", "KRAB", "VP64",
	"VPR", "BirA", "luciferase", "Fluc", "Rluc", "Nluc", "overexpression", "knockdown", "knockout", "reporter",
	"WPRE",
}

var curatedTetInducible = []string{
	"Tet-On", "Tet-Off", "Tet-On 3G", "TetOne", "rtTA", "rtTA3", "tTA", "Dox",
}

var curatedSpecies = []string{
	"人", "小鼠", "大鼠", "猴", "斑马鱼", "果蝇", "酵母", "拟南芥", "鸡", "猪", "线虫",
}

var curatedEColiResistance = []string{
	"Amp", "Kan", "Chl", "Spec", "Strep", "Tet", "Gent", "Zeocin",
}

var curatedMammalResistance = []string{
	"Puro", "Neo", "Hygro", "Blast", "Zeocin",
}

// valueAlias maps an alternative spelling onto a canonical vocabulary value.
type valueAlias struct {
	text     string
	category Category
	value    string
}

// curatedAliases covers marker spellings seen in filenames and in feature
// annotations (SnapGene labels, GenBank /gene and /product qualifiers).
var curatedAliases = []valueAlias{
	{"AmpR", CategoryEColiResistance, "Amp"},
	{"Ampicillin", CategoryEColiResistance, "Amp"},
	{"bla", CategoryEColiResistance, "Amp"},
	{"beta-lactamase", CategoryEColiResistance, "Amp"},
	{"Carb", CategoryEColiResistance, "Amp"},
	{"KanR", CategoryEColiResistance, "Kan"},
	{"Kanamycin", CategoryEColiResistance, "Kan"},
	{"NeoR/KanR", CategoryEColiResistance, "Kan"},
	{"NeoR/KanR", CategoryMammalResistance, "Neo"},
	{"CmR", CategoryEColiResistance, "Chl"},
	{"Cm", CategoryEColiResistance, "Chl"},
	{"Chloramphenicol", CategoryEColiResistance, "Chl"},
	{"SmR", CategoryEColiResistance, "Strep"},
	{"Streptomycin", CategoryEColiResistance, "Strep"},
	{"SpecR", CategoryEColiResistance, "Spec"},
	{"aadA", CategoryEColiResistance, "Spec"},
	{"Spectinomycin", CategoryEColiResistance, "Spec"},
	{"TcR", CategoryEColiResistance, "Tet"},
	{"Tetracycline", CategoryEColiResistance, "Tet"},
	{"GmR", CategoryEColiResistance, "Gent"},
	{"Gentamicin", CategoryEColiResistance, "Gent"},
	{"PuroR", CategoryMammalResistance, "Puro"},
	{"Puromycin", CategoryMammalResistance, "Puro"},
	{"pac", CategoryMammalResistance, "Puro"},
	{"NeoR", CategoryMammalResistance, "Neo"},
	{"Neomycin", CategoryMammalResistance, "Neo"},
	{"G418", CategoryMammalResistance, "Neo"},
	{"HygR", CategoryMammalResistance, "Hygro"},
	{"Hyg", CategoryMammalResistance, "Hygro"},
	{"Hygromycin", CategoryMammalResistance, "Hygro"},
	{"hph", CategoryMammalResistance, "Hygro"},
	{"BSD", CategoryMammalResistance, "Blast"},
	{"BlastR", CategoryMammalResistance, "Blast"},
	{"Blasticidin", CategoryMammalResistance, "Blast"},
	{"Bsr", CategoryMammalResistance, "Blast"},
	{"BleoR", CategoryMammalResistance, "Zeocin"},
	{"Sh ble", CategoryMammalResistance, "Zeocin"},
	{"Zeo", CategoryMammalResistance, "Zeocin"},
	{"FLAG", CategoryProteinTag, "Flag"},
	{"DYKDDDDK", CategoryProteinTag, "Flag"},
	{"3xFLAG", CategoryProteinTag, "3xFlag"},
	{"c-Myc", CategoryProteinTag, "Myc"},
	{"His6", CategoryProteinTag, "6xHis"},
	{"6His", CategoryProteinTag, "6xHis"},
	{"EF-1a", CategoryPromoter, "EF1a"},
	{"EF-1alpha", CategoryPromoter, "EF1a"},
	{"EF1alpha", CategoryPromoter, "EF1a"},
	{"CMV promoter", CategoryPromoter, "CMV"},
	{"CMV enhancer", CategoryPromoter, "CMV"},
	{"SV40 promoter", CategoryPromoter, "SV40"},
	{"SV40 ori", CategoryPromoter, "SV40"},
	{"human U6", CategoryPromoter, "U6"},
	{"PGK promoter", CategoryPromoter, "PGK"},
	{"enhanced GFP", CategoryFluorophore, "EGFP"},
	{"TetOn", CategoryTetInducible, "Tet-On"},
	{"TetOff", CategoryTetInducible, "Tet-Off"},
	{"Tet-On3G", CategoryTetInducible, "Tet-On 3G"},
	{"doxycycline", CategoryTetInducible, "Dox"},
}

// CuratedGeneSymbols returns a copy of the built-in gene symbol list.
func CuratedGeneSymbols() []string {
	return append([]string(nil), curatedGenes...)
}

func curatedValues(c Category) []string {
	switch c {
	case CategoryVector:
		out := make([]string, 0, len(curatedBackbones))
		for _, b := range curatedBackbones {
			out = append(out, b.name)
		}
		return out
	case CategorySpecies:
		return curatedSpecies
	case CategoryEColiResistance:
		return curatedEColiResistance
	case CategoryMammalResistance:
		return curatedMammalResistance
	case CategoryFunction:
		return curatedFunctions
	case CategoryInsertType:
		return curatedInsertTypes
	case CategoryProteinTag:
		return curatedProteinTags
	case CategoryFluorophore:
		return curatedFluorophores
	case CategoryPromoter:
		return curatedPromoters
	case CategoryTetInducible:
		return curatedTetInducible
	case CategoryTargetGene:
		return curatedGenes
	default:
		return nil
	}
}

//Personal.AI order the ending
